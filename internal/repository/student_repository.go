package repository

import (
	"errors"
	"strings"

	"github.com/denhamvenom/inventoryapp/internal/models"

	"gorm.io/gorm"
)

// StudentRepository 队员名册数据访问接口
type StudentRepository interface {
	GetByName(name string) (*models.Student, error)
	ListAll() ([]models.Student, error)
	Create(student *models.Student) error
}

// GormStudentRepository GORM 实现
type GormStudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository 创建队员名册仓库
func NewStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

// GetByName 按姓名查询，未找到时返回 (nil, nil)
func (r *GormStudentRepository) GetByName(name string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("name = ?", strings.TrimSpace(name)).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

// ListAll 返回全部队员
func (r *GormStudentRepository) ListAll() ([]models.Student, error) {
	students := make([]models.Student, 0)
	if err := r.db.Order("name ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// Create 创建队员
func (r *GormStudentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}
