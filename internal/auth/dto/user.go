package dto

type UserOutput struct {
	UserID    string   `json:"userId"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	GivenName string   `json:"givenName"`
	Surname   string   `json:"surname"`
	ProfileID string   `json:"profileId"`
	Roles     []string `json:"roles"`
}
