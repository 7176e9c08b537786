package viewmodel

import "github.com/gofiber/fiber/v2"

// Layout carries what the shared page shell needs.
type Layout struct {
	Page            string
	Title           string
	FromProtected   bool
	IsError         bool
	Msg             fiber.Map
	Username        string
	Role            string
	Navigation      []NavItem
	CSRFToken       string
	HCaptchaSitekey string
}
