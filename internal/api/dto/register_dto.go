package dto

type RegisterDTO struct {
	ScreenName string `json:"screen_name" validate:"required,min=1,max=50"`
	Name       string `json:"name" validate:"max=50"`
	Password   string `json:"password" validate:"required,min=6,max=64"`
}

type CredentialDTO struct {
	ScreenName string `json:"screen_name" validate:"required"`
	Password   string `json:"password" validate:"required"`
}
