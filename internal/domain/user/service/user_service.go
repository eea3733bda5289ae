package service

import (
	"errors"
	"strings"

	"redemption_report/internal/domain/user/model"
	"redemption_report/internal/domain/user/repository"
	"redemption_report/internal/pkg/otp"
	"redemption_report/pkg/utils"

	"gorm.io/gorm"
)

// UserService 用户服务接口
type UserService interface {
	LoginOrRegister(email, code string) (string, error)
	SendOTP(email string) error
	GetUsers(page, limit int) ([]model.User, int64, error)
	GetUser(id uint) (*model.User, error)
}

// userService 实现
type userService struct {
	repo repository.UserRepository
	otp  otp.OTPService
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, otp otp.OTPService) UserService {
	return &userService{repo: repo, otp: otp}
}

// LoginOrRegister 邮箱验证码登录，不存在则注册
func (s *userService) LoginOrRegister(email, code string) (string, error) {
	// 1. 验证验证码
	if !s.otp.Verify(email, code) {
		return "", errors.New("invalid verification code")
	}

	// 2. 查询用户是否存在
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 3. 不存在则注册
			user = &model.User{
				Email:    email,
				Nickname: defaultNickname(email),
				Role:     model.RoleUser,
			}
			if err := s.repo.Create(user); err != nil {
				return "", err
			}
		} else {
			return "", err
		}
	}

	// 4. 检查用户状态
	if user.Status == model.StatusBanned {
		return "", errors.New("account is banned")
	}
	if user.Status == model.StatusDeleted {
		return "", errors.New("account has been deleted")
	}

	// 5. 生成 Token
	token, _, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", err
	}

	return token, nil
}

func (s *userService) SendOTP(email string) error {
	_, err := s.otp.Send(email)
	return err
}

// GetUsers 获取用户列表（分页）
func (s *userService) GetUsers(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.GetList(offset, limit)
}

// GetUser 获取单个用户
func (s *userService) GetUser(id uint) (*model.User, error) {
	return s.repo.GetByID(id)
}

// defaultNickname 注册时的默认昵称，取邮箱 @ 前缀
func defaultNickname(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
