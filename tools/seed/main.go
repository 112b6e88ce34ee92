// Command seed loads a starter catalog and an admin account into an
// empty database. Existing documents are left alone, so it is safe to
// re-run.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/menswear/storefront/config"
	"github.com/menswear/storefront/database"
	"github.com/menswear/storefront/models"
	"github.com/menswear/storefront/repository"
)

var sampleProducts = []models.Product{
	{
		Name:        "Classic Oxford Shirt",
		Category:    models.CategoryShirts,
		SleeveType:  models.SleeveFull,
		Price:       1299,
		Description: "Button-down oxford in breathable cotton.",
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"white", "sky blue"},
		Stock:       40,
	},
	{
		Name:        "Crew Neck Tee",
		Category:    models.CategoryTshirts,
		SleeveType:  models.SleeveHalf,
		Price:       499,
		Description: "Everyday crew neck in combed cotton.",
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Colors:      []string{"black", "white", "olive"},
		Stock:       120,
	},
	{
		Name:        "Slim Fit Chinos",
		Category:    models.CategoryTrousers,
		Price:       1599,
		Description: "Stretch chinos with a tapered leg.",
		Sizes:       []string{"30", "32", "34", "36"},
		Colors:      []string{"khaki", "navy"},
		Stock:       60,
	},
	{
		Name:        "Leather Belt",
		Category:    models.CategoryAccessories,
		Price:       899,
		Description: "Full-grain leather belt with a brushed buckle.",
		Sizes:       []string{"32", "36", "40"},
		Colors:      []string{"brown", "black"},
		Stock:       8,
	},
}

func main() {
	var adminEmail, adminPassword string
	flag.StringVar(&adminEmail, "admin-email", os.Getenv("ADMIN_EMAIL"), "admin account email")
	flag.StringVar(&adminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "admin account password")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := database.ConnectMongo(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer database.DisconnectMongo(client)

	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	if adminEmail != "" && adminPassword != "" {
		users := repository.NewUserRepository(db)
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		admin := &models.User{
			Name:     "Store Admin",
			Email:    adminEmail,
			Password: string(hashed),
			Role:     models.RoleAdmin,
		}
		switch err := users.Create(ctx, admin); err {
		case nil:
			log.Printf("created admin %s", adminEmail)
		case repository.ErrDuplicateEmail:
			log.Printf("admin %s already exists, skipping", adminEmail)
		default:
			log.Fatalf("create admin: %v", err)
		}
	}

	products := repository.NewProductRepository(db)
	existing, err := products.Count(ctx)
	if err != nil {
		log.Fatalf("count products: %v", err)
	}
	if existing > 0 {
		log.Printf("catalog already has %d products, skipping seed", existing)
		return
	}

	for i := range sampleProducts {
		p := sampleProducts[i]
		if err := products.Create(ctx, &p); err != nil {
			log.Fatalf("create product %q: %v", p.Name, err)
		}
		log.Printf("created product %q", p.Name)
	}
}
