package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/joho/godotenv"

	"github.com/streetpulse/api/internal/domain"
	"github.com/streetpulse/api/internal/repository"
	"github.com/streetpulse/api/pkg/config"
	"github.com/streetpulse/api/pkg/database"
	"github.com/streetpulse/api/pkg/logger"
)

// Development seed data: one admin, a handful of member accounts, and a
// spread of businesses across every category with deals and reviews.

func main() {
	godotenv.Load()
	cfg := config.Load()

	adminEmail := envOr("ADMIN_EMAIL", "admin@streetpulse.local")
	adminPassword := envOr("ADMIN_PASSWORD", "StreetPulseAdmin!")

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(cfg.Database.URL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(pool)
	businessRepo := repository.NewBusinessRepository(pool)
	dealRepo := repository.NewDealRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)

	// Wipe previous data. Cascading foreign keys clear reviews, deals,
	// bookmarks and interactions along with their parents.
	for _, table := range []string{"deal_interactions", "bookmarks", "reviews", "deals", "businesses", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			logger.Error("Failed to clear table", "table", table, "error", err)
			os.Exit(1)
		}
	}

	adminHash, err := argon2id.CreateHash(adminPassword, argon2id.DefaultParams)
	if err != nil {
		logger.Error("Failed to hash admin password", "error", err)
		os.Exit(1)
	}
	admin, err := userRepo.Create(ctx, "StreetPulse Admin", adminEmail, adminHash, domain.RoleAdmin)
	if err != nil {
		logger.Error("Failed to create admin user", "error", err)
		os.Exit(1)
	}

	memberHash, err := argon2id.CreateHash("welcome123", argon2id.DefaultParams)
	if err != nil {
		logger.Error("Failed to hash member password", "error", err)
		os.Exit(1)
	}

	memberSeeds := []struct {
		fullName string
		email    string
	}{
		{"Jamie Reader", "jamie@example.com"},
		{"Taylor Nguyen", "taylor@example.com"},
		{"Priya Patel", "priya@example.com"},
		{"Marcus Reed", "marcus@example.com"},
		{"Elena Torres", "elena@example.com"},
		{"Noah Brooks", "noah@example.com"},
		{"Sofia Chen", "sofia@example.com"},
		{"Luis Alvarez", "luis@example.com"},
		{"Ava Jordan", "ava@example.com"},
		{"Zoe Carter", "zoe@example.com"},
	}

	users := []*domain.User{admin}
	for _, m := range memberSeeds {
		u, err := userRepo.Create(ctx, m.fullName, m.email, memberHash, domain.RoleMember)
		if err != nil {
			logger.Error("Failed to create member user", "email", m.email, "error", err)
			os.Exit(1)
		}
		users = append(users, u)
	}

	var businesses []*domain.Business
	for i := range businessSeeds {
		b, err := businessRepo.Create(ctx, &businessSeeds[i])
		if err != nil {
			logger.Error("Failed to create business", "name", businessSeeds[i].Name, "error", err)
			os.Exit(1)
		}
		businesses = append(businesses, b)
	}

	dealCount := 0
	for idx, b := range businesses {
		for _, d := range dealsFor(b, idx) {
			if _, err := dealRepo.Create(ctx, &d); err != nil {
				logger.Error("Failed to create deal", "title", d.Title, "error", err)
				os.Exit(1)
			}
			dealCount++
		}
	}

	comments := []string{
		"Friendly staff and fast service.",
		"Loved the atmosphere and quality.",
		"Great value for the price.",
		"Will definitely come back again.",
		"Excellent attention to detail.",
		"Service was smooth and welcoming.",
	}
	reviewCount := 0
	for idx, b := range businesses {
		n := 2 + idx%3
		for i := 0; i < n; i++ {
			user := users[(idx+i)%len(users)]
			rating := 4 + i%2
			text := comments[(idx+i)%len(comments)]
			if _, err := reviewRepo.Create(ctx, b.ID, user.ID, rating, text); err != nil {
				logger.Error("Failed to create review", "business", b.Name, "error", err)
				os.Exit(1)
			}
			reviewCount++
		}
	}

	logger.Info("Seed complete",
		"businesses", len(businesses),
		"deals", dealCount,
		"reviews", reviewCount,
		"users", len(users),
	)
	fmt.Printf("Admin login: %s / %s\n", adminEmail, adminPassword)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// weekHours fills Mon-Fri with the given window and keeps shorter
// weekend hours, matching the typical storefront schedule.
func weekHours(open, close string) domain.HoursMap {
	return domain.HoursMap{
		"mon": {Open: open, Close: close},
		"tue": {Open: open, Close: close},
		"wed": {Open: open, Close: close},
		"thu": {Open: open, Close: close},
		"fri": {Open: open, Close: close},
		"sat": {Open: "09:00", Close: "17:00"},
		"sun": {Open: "10:00", Close: "14:00"},
	}
}

func ptr(f float64) *float64 { return &f }

var businessSeeds = []domain.BusinessInput{
	{
		Name: "Harborline Coffee & Bakery", Category: "food",
		Address: "112 Dockside Ave", City: "Springfield", State: "IL", Zip: "62701",
		Phone: "(217) 555-0110", Website: "https://harborlinecoffee.example.com",
		Hours: "Mon-Fri 7am-6pm, Sat 9am-5pm, Sun 10am-2pm", HoursJSON: weekHours("07:00", "18:00"),
		PriceLevel: "$$", Tags: []string{"coffee", "bakery", "wifi"},
		Description:   "Small-batch espresso, house-made pastries, and a sunny window bar for remote work.",
		VerifiedBadge: true,
		ImageURL:      "https://images.unsplash.com/photo-1495474472287-4d71bcdd2085?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1459755486867-b55449bb39ff?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1481833761820-0509d3217039?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.8017), Longitude: ptr(-89.6436),
	},
	{
		Name: "Oak & Willow Bookshop", Category: "retail",
		Address: "45 Maple Ave", City: "Springfield", State: "IL", Zip: "62702",
		Phone: "(217) 555-0133", Website: "https://oakwillowbooks.example.com",
		Hours: "Daily 10am-7pm", HoursJSON: weekHours("10:00", "19:00"),
		PriceLevel: "$$", Tags: []string{"books", "events", "community"},
		Description:   "Curated indie reads, weekly author events, and a cozy used-book corner.",
		VerifiedBadge: false,
		ImageURL:      "https://images.unsplash.com/photo-1519681393784-d120267933ba?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1524995997946-a1c2e315a42f?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1495446815901-a7297e633e8d?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.8062), Longitude: ptr(-89.6504),
	},
	{
		Name: "Northside Auto Care", Category: "auto",
		Address: "800 Route 29", City: "Springfield", State: "IL", Zip: "62704",
		Phone: "(217) 555-0190", Website: "https://northsideauto.example.com",
		Hours: "Mon-Fri 8am-6pm", HoursJSON: weekHours("08:00", "18:00"),
		PriceLevel: "$$", Tags: []string{"oil change", "brakes", "inspection"},
		Description:   "ASE-certified techs handling tune-ups, brake service, and same-day inspections.",
		VerifiedBadge: true,
		ImageURL:      "https://images.unsplash.com/photo-1487754180451-c456f719a1fc?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1486262715619-67b85e0b08d3?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1503376780353-7e6692767b70?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.7817), Longitude: ptr(-89.6502),
	},
	{
		Name: "Bloom & Co. Floral Studio", Category: "beauty",
		Address: "299 Garden Lane", City: "Springfield", State: "IL", Zip: "62703",
		Phone: "(217) 555-0177", Website: "https://bloomco.example.com",
		Hours: "Mon-Sat 9am-6pm", HoursJSON: weekHours("09:00", "18:00"),
		PriceLevel: "$$", Tags: []string{"flowers", "weddings", "gifts"},
		Description:   "Modern floral arrangements, event styling, and same-day bouquets.",
		VerifiedBadge: true,
		ImageURL:      "https://images.unsplash.com/photo-1501004318641-b39e6451bec6?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1487412720507-e7ab37603c6f?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1468327768560-75b778cbb551?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.7904), Longitude: ptr(-89.6378),
	},
	{
		Name: "Summit Wellness Clinic", Category: "health",
		Address: "12 Cedar Medical Plaza", City: "Springfield", State: "IL", Zip: "62705",
		Phone: "(217) 555-0142", Website: "https://summitwellness.example.com",
		Hours: "Mon-Fri 8am-5pm", HoursJSON: weekHours("08:00", "17:00"),
		PriceLevel: "$$$", Tags: []string{"primary care", "labs", "telehealth"},
		Description:   "Family-focused clinic offering same-week appointments and on-site labs.",
		VerifiedBadge: true,
		ImageURL:      "https://images.unsplash.com/photo-1504814532849-927f2d056c1e?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1519494026892-80bbd2d6fd0d?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1538108149393-fbbd81895907?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.7756), Longitude: ptr(-89.6754),
	},
	{
		Name: "Cedar Grove Hardware", Category: "home",
		Address: "520 Cedar Grove Rd", City: "Springfield", State: "IL", Zip: "62702",
		Phone: "(217) 555-0151", Website: "https://cedargrovehardware.example.com",
		Hours: "Mon-Sat 8am-7pm, Sun 9am-4pm", HoursJSON: weekHours("08:00", "19:00"),
		PriceLevel: "$$", Tags: []string{"tools", "paint", "garden"},
		Description:   "Neighborhood hardware with tool rentals and expert project advice.",
		VerifiedBadge: false,
		ImageURL:      "https://images.unsplash.com/photo-1489515217757-5fd1be406fef?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1484632152040-840235adc262?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1558449028-b53a39d100fc?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.8151), Longitude: ptr(-89.6491),
	},
	{
		Name: "Metro Fit Studio", Category: "health",
		Address: "710 East Monroe", City: "Springfield", State: "IL", Zip: "62701",
		Phone: "(217) 555-0164", Website: "https://metrofit.example.com",
		Hours: "Mon-Fri 5am-9pm, Sat 7am-4pm", HoursJSON: weekHours("05:00", "21:00"),
		PriceLevel: "$$$", Tags: []string{"fitness", "classes", "personal training"},
		Description:   "High-energy HIIT, yoga, and strength classes with certified coaches.",
		VerifiedBadge: true,
		ImageURL:      "https://images.unsplash.com/photo-1554284126-aa88f22d8b74?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1518611012118-696072aa579a?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1526401485004-2aa7a21a5b1d?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.8012), Longitude: ptr(-89.6467),
	},
	{
		Name: "Silverline Electronics Repair", Category: "services",
		Address: "900 Tech Park Dr", City: "Springfield", State: "IL", Zip: "62703",
		Phone: "(217) 555-0188", Website: "https://silverlinefix.example.com",
		Hours: "Mon-Sat 9am-7pm", HoursJSON: weekHours("09:00", "19:00"),
		PriceLevel: "$$", Tags: []string{"phone repair", "laptop", "diagnostics"},
		Description:   "Same-day device repairs with transparent pricing and warranty.",
		VerifiedBadge: false,
		ImageURL:      "https://images.unsplash.com/photo-1517433456452-f9633a875f6f?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1518779578993-ec3579fee39f?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1487058792275-0ad4aaf24ca7?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.7859), Longitude: ptr(-89.6365),
	},
	{
		Name: "Sunset Theater Co.", Category: "entertainment",
		Address: "88 Elm Street", City: "Springfield", State: "IL", Zip: "62702",
		Phone: "(217) 555-0122", Website: "https://sunsettheater.example.com",
		Hours: "Wed-Sun 4pm-10pm", HoursJSON: weekHours("16:00", "22:00"),
		PriceLevel: "$$", Tags: []string{"performing arts", "tickets", "community"},
		Description:   "Community theater featuring local productions and youth workshops.",
		VerifiedBadge: true,
		ImageURL:      "https://images.unsplash.com/photo-1507924538820-ede94a04019d?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1515169067865-5387ec356754?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1504805572947-34fad45aed93?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.8129), Longitude: ptr(-89.6524),
	},
	{
		Name: "Prairie Plate Diner", Category: "food",
		Address: "200 State St", City: "Springfield", State: "IL", Zip: "62701",
		Phone: "(217) 555-0128", Website: "https://prairieplate.example.com",
		Hours: "Daily 6am-3pm", HoursJSON: weekHours("06:00", "15:00"),
		PriceLevel: "$", Tags: []string{"breakfast", "lunch", "classic"},
		Description:   "All-day breakfast, homemade pies, and daily blue-plate specials.",
		VerifiedBadge: true,
		ImageURL:      "https://images.unsplash.com/photo-1481833761820-0509d3217039?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1498654896293-37aacf113fd9?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1528502668750-88ba58083c0f?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.7991), Longitude: ptr(-89.6449),
	},
	{
		Name: "Lighthouse Pet Supply", Category: "retail",
		Address: "930 Harbor Blvd", City: "Springfield", State: "IL", Zip: "62707",
		Phone: "(217) 555-0119", Website: "https://lighthousepet.example.com",
		Hours: "Mon-Sat 9am-8pm, Sun 10am-5pm", HoursJSON: weekHours("09:00", "20:00"),
		PriceLevel: "$$", Tags: []string{"pets", "grooming", "supplies"},
		Description:   "Natural pet foods, locally made treats, and self-serve wash stations.",
		VerifiedBadge: false,
		ImageURL:      "https://images.unsplash.com/photo-1517849845537-4d257902454a?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1507146426996-ef05306b995a?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1518717758536-85ae29035b6d?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.8261), Longitude: ptr(-89.6114),
	},
	{
		Name: "Cityline Comedy Club", Category: "entertainment",
		Address: "700 Laugh Ln", City: "Springfield", State: "IL", Zip: "62701",
		Phone: "(217) 555-0167", Website: "https://citylinecomedy.example.com",
		Hours: "Thu-Sun 6pm-12am", HoursJSON: weekHours("18:00", "23:30"),
		PriceLevel: "$$", Tags: []string{"comedy", "live shows", "nightlife"},
		Description:   "Local and touring comics with weekend late-night showcases.",
		VerifiedBadge: false,
		ImageURL:      "https://images.unsplash.com/photo-1504805572947-34fad45aed93?auto=format&fit=crop&w=900&q=80",
		Gallery: []string{
			"https://images.unsplash.com/photo-1461783436728-0a9217714694?auto=format&fit=crop&w=900&q=80",
			"https://images.unsplash.com/photo-1523371153586-b3b8e1782b44?auto=format&fit=crop&w=900&q=80",
		},
		Latitude: ptr(39.8019), Longitude: ptr(-89.6509),
	},
}

type dealTemplate struct {
	title       string
	description string
	discount    string
	terms       string
}

var dealTemplates = []dealTemplate{
	{"Weekday Boost", "Save on weekday visits", "15% off", "Valid Mon-Thu only."},
	{"First-Time Offer", "Intro discount for new customers", "$10 off", "New customers only."},
	{"Family Bundle", "Bundle deal for families", "Buy 1 get 1 50% off", "Same visit only."},
	{"Local Hero Special", "Community appreciation discount", "20% off", "ID required."},
	{"Seasonal Savings", "Limited-time seasonal offer", "25% off", "While supplies last."},
	{"Happy Hour", "Limited-time pricing window", "2-for-1", "See staff for details."},
}

// dealsFor builds two deals per business, one expiring further out and
// one within the expiring-soon window.
func dealsFor(b *domain.Business, idx int) []domain.DealInput {
	start := time.Now().AddDate(0, 0, -3)
	end := time.Now().AddDate(0, 0, 10+idx%12)
	endAlt := time.Now().AddDate(0, 0, 6+idx%9)

	first := dealTemplates[idx%len(dealTemplates)]
	second := dealTemplates[(idx+2)%len(dealTemplates)]

	return []domain.DealInput{
		{
			BusinessID:             b.ID,
			Title:                  b.Name + " " + first.title,
			Description:            first.description + " at " + b.Name + ".",
			DiscountValue:          first.discount,
			StartDate:              &start,
			EndDate:                &end,
			Terms:                  first.terms,
			CouponCode:             fmt.Sprintf("SAVE%d", idx+10),
			RedemptionInstructions: "Show this code at checkout.",
			Category:               b.Category,
		},
		{
			BusinessID:             b.ID,
			Title:                  b.Name + " " + second.title,
			Description:            second.description + " with " + b.Name + ".",
			DiscountValue:          second.discount,
			StartDate:              &start,
			EndDate:                &endAlt,
			Terms:                  second.terms,
			CouponCode:             fmt.Sprintf("LOCAL%d", idx+30),
			RedemptionInstructions: "Mention this offer when paying.",
			Category:               b.Category,
		},
	}
}
