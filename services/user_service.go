package services

import (
	"errors"

	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"

	"gorm.io/gorm"
)

type UserService interface {
	GetUsers(departmentID uint) ([]models.User, error)
	GetUser(id uint) (*models.User, error)
	UpdateProfile(id uint, req models.UpdateProfileRequest) (*models.User, error)
	SetUserType(id uint, userType models.UserType) (*models.User, error)
	AssignDepartment(id uint, departmentID *uint) (*models.User, error)
}

type userService struct {
	userRepo       repositories.UserRepository
	departmentRepo repositories.DepartmentRepository
}

func NewUserService(userRepo repositories.UserRepository, departmentRepo repositories.DepartmentRepository) UserService {
	return &userService{userRepo: userRepo, departmentRepo: departmentRepo}
}

func (s *userService) GetUsers(departmentID uint) ([]models.User, error) {
	return s.userRepo.GetList(departmentID)
}

func (s *userService) GetUser(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Message: "user not found"}
	}
	return user, err
}

func (s *userService) UpdateProfile(id uint, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "email already taken"}
		}
		return nil, err
	}
	return user, nil
}

// SetUserType routes every tier change through User.SetUserType so the
// ADMIN tier and superuser status always move together in one write.
func (s *userService) SetUserType(id uint, userType models.UserType) (*models.User, error) {
	if !userType.Valid() {
		return nil, models.ErrorValidation{Message: "invalid user type"}
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	user.SetUserType(userType)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) AssignDepartment(id uint, departmentID *uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	if departmentID != nil {
		if _, err := s.departmentRepo.GetByID(*departmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorValidation{Message: "department not found"}
			}
			return nil, err
		}
	}

	user.DepartmentID = departmentID
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(id)
}
