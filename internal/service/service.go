package service

import (
	"context"

	"go.uber.org/zap"

	"rentaroom/config"
	"rentaroom/internal/domain"
	"rentaroom/internal/repository"
	"rentaroom/internal/storage"
)

const errInvalidValue = "field value is out of range or too long"

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Notifier    BookingNotifier
}

type Services struct {
	User    UserService
	Auth    AuthService
	Listing ListingService
	Message MessageService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:    NewUserService(deps.Repos.User, deps.Logger),
		Auth:    NewAuthService(deps.Repos.User, deps.Config.JWT, deps.Logger),
		Listing: NewListingService(deps.Repos.Listing, deps.FileStorage, deps.Config.Uploads.BaseURL, deps.Logger),
		Message: NewMessageService(deps.Repos.Message, deps.Notifier, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, dto domain.UpdateProfileDTO) (*domain.User, error)
	AdminUpdate(ctx context.Context, id int64, dto domain.AdminUpdateUserDTO) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.User, error)
	EnsureAdmin(ctx context.Context, name, email, password string) (*domain.User, bool, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, dto domain.LoginRequest) (*domain.AuthResponse, error)
	IssueToken(user domain.User) (string, error)
	ParseToken(ctx context.Context, token string) (domain.Identity, error)
}

type ListingService interface {
	List(ctx context.Context) ([]domain.Listing, error)
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Stats(ctx context.Context) (*domain.ListingStats, error)
	Create(ctx context.Context, input domain.ListingInput, upload *domain.UploadedFile) (*domain.Listing, error)
	Update(ctx context.Context, id int64, input domain.ListingInput, upload *domain.UploadedFile) (*domain.Listing, error)
	Delete(ctx context.Context, id int64) error
}

// BookingNotifier is told about booking requests after they are stored.
// Implementations must not block.
type BookingNotifier interface {
	BookingCreated(msg domain.Message)
	BookingStatusChanged(msg domain.Message)
}

type MessageService interface {
	Create(ctx context.Context, dto domain.CreateMessageDTO) (*domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.MessageWithRelations, error)
	List(ctx context.Context) ([]domain.MessageWithRelations, error)
	UpdateStatus(ctx context.Context, id int64, status domain.MessageStatus) (*domain.Message, error)
	Delete(ctx context.Context, id int64) error
}
