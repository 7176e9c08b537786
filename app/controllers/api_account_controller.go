package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rentcourt/ftpr/internal/pkg/money"
	"github.com/rentcourt/ftpr/internal/pkg/pricing"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
	"github.com/rentcourt/ftpr/internal/pkg/viewmodel"
)

// HandleGetMe returns the signed-in profile with its portal navigation.
func HandleGetMe(c *fiber.Ctx) error {
	uc := usercontext.GetUserContext(c)
	profile, err := GetServices().Repos.Profile.GetByID(uc.UserID)
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, fiber.Map{
		"profile":    profile,
		"avatar_url": viewmodel.AvatarURL(profile.Email, 80),
		"home":       uc.HomePath(),
		"navigation": viewmodel.NavigationFor(profile.Role),
	})
}

type priceQuote struct {
	County    string `json:"county"`
	Price     int64  `json:"price"`
	Formatted string `json:"formatted"`
}

func quote(county string) priceQuote {
	price := pricing.PriceForCounty(county)
	return priceQuote{County: county, Price: price, Formatted: money.Format(price)}
}

// HandleGetPricing quotes one county, or the whole table without ?county=.
func HandleGetPricing(c *fiber.Ctx) error {
	if county := strings.TrimSpace(c.Query("county")); county != "" {
		return OK(c, quote(county))
	}
	counties := pricing.MarylandCounties()
	table := make([]priceQuote, 0, len(counties))
	for _, county := range counties {
		table = append(table, quote(county))
	}
	return OK(c, fiber.Map{
		"default":  pricing.Global().Default(),
		"counties": table,
	})
}

func HandleGetDashboard(c *fiber.Ctx) error {
	counts, err := statistics.Dashboard(GetServices().Repos, usercontext.GetUserContext(c))
	if err != nil {
		return FailError(c, err)
	}
	return OK(c, counts)
}
