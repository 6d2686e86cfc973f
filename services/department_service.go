package services

import (
	"errors"

	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"

	"gorm.io/gorm"
)

type DepartmentService interface {
	CreateDepartment(req models.CreateDepartmentRequest) (*models.Department, error)
	UpdateDepartment(id uint, req models.UpdateDepartmentRequest) (*models.Department, error)
	SetTeamLeader(id uint, teamLeaderID *uint) (*models.Department, error)
	GetDepartment(id uint) (*models.Department, error)
	GetDepartments() ([]models.Department, error)
	DeleteDepartment(id uint) error
}

type departmentService struct {
	departmentRepo repositories.DepartmentRepository
	userRepo       repositories.UserRepository
}

func NewDepartmentService(departmentRepo repositories.DepartmentRepository, userRepo repositories.UserRepository) DepartmentService {
	return &departmentService{departmentRepo: departmentRepo, userRepo: userRepo}
}

// CreateDepartment never takes a leader: a fresh department has no
// members, and the leader must be a member. Assign members first, then
// promote one via SetTeamLeader.
func (s *departmentService) CreateDepartment(req models.CreateDepartmentRequest) (*models.Department, error) {
	department := &models.Department{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.departmentRepo.Create(department); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a department with this name already exists"}
		}
		return nil, err
	}
	return department, nil
}

func (s *departmentService) UpdateDepartment(id uint, req models.UpdateDepartmentRequest) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "department not found"}
		}
		return nil, err
	}

	if req.Name != nil {
		department.Name = *req.Name
	}
	if req.Description != nil {
		department.Description = *req.Description
	}

	if err := s.departmentRepo.Update(department); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "a department with this name already exists"}
		}
		return nil, err
	}
	return s.departmentRepo.GetByID(id)
}

// SetTeamLeader enforces the membership invariant: a department's leader
// must belong to the department they lead. Passing nil clears the
// leader.
func (s *departmentService) SetTeamLeader(id uint, teamLeaderID *uint) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "department not found"}
		}
		return nil, err
	}

	if teamLeaderID != nil {
		leader, err := s.userRepo.GetByID(*teamLeaderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorValidation{Message: "user not found"}
			}
			return nil, err
		}
		if leader.DepartmentID == nil || *leader.DepartmentID != department.ID {
			return nil, models.ErrorValidation{Message: "team leader must be a member of the department"}
		}
	}

	department.TeamLeaderID = teamLeaderID
	if err := s.departmentRepo.Update(department); err != nil {
		return nil, err
	}
	return s.departmentRepo.GetByID(id)
}

func (s *departmentService) GetDepartment(id uint) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "department not found"}
	}
	return department, err
}

func (s *departmentService) GetDepartments() ([]models.Department, error) {
	return s.departmentRepo.GetAll()
}

func (s *departmentService) DeleteDepartment(id uint) error {
	if _, err := s.departmentRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "department not found"}
		}
		return err
	}

	count, err := s.departmentRepo.CountMembers(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.ErrorValidation{Message: "department still has members"}
	}

	return s.departmentRepo.Delete(id)
}
