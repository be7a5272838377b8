package services

import (
	"github.com/blogem/tenant-admin/authenticator"
	"github.com/blogem/tenant-admin/repositories"
)

// Services holds all service instances
type Services struct {
	Auth     AuthService
	Users    UserService
	Products ProductService
	Review   ReviewService
}

// NewServices creates and initializes all service instances
func NewServices(repos *repositories.Repositories, verifier authenticator.Verifier) *Services {
	return &Services{
		Auth:     NewAuthService(verifier),
		Users:    NewUserService(repos.Users, repos.Credentials),
		Products: NewProductService(repos.Products, repos.Requests),
		Review:   NewReviewService(repos.Requests, repos.Products),
	}
}
