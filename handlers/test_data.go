// Note: To generate demo data, use:
// curl -X POST "http://localhost:8080/api/test/generate-data?count=5" -H "Content-Type: application/json"

package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"

	"csrconnect/backend/handlers/respond"
	"csrconnect/backend/models"
	"csrconnect/backend/services/matching"
	"csrconnect/backend/store"
)

// Predefined arrays for consistent demo data
var villageLocations = []string{
	"Anandpur, Bhopal, Madhya Pradesh", "Khajuri, Varanasi, Uttar Pradesh",
	"Piparia, Hoshangabad, Madhya Pradesh", "Mandvi, Kutch, Gujarat",
	"Shirol, Kolhapur, Maharashtra", "Channapatna, Ramanagara, Karnataka",
	"Raghurajpur, Puri, Odisha", "Kullu, Himachal Pradesh",
}

var productNames = map[string][]string{
	"achar":           {"Mango Achar", "Lemon Pickle", "Mixed Vegetable Achar", "Green Chilli Pickle"},
	"papad":           {"Urad Papad", "Moong Papad", "Rice Papad", "Masala Papad"},
	"handicrafts":     {"Bamboo Baskets", "Terracotta Pots", "Jute Bags", "Wooden Toys"},
	"textiles":        {"Handloom Sarees", "Block Print Dupattas", "Khadi Fabric", "Embroidered Cushions"},
	"food_products":   {"Jaggery Blocks", "Millet Flour", "Honey", "Dried Spices"},
	"organic_farming": {"Organic Rice", "Cold Pressed Oil", "Organic Turmeric", "Fresh Vegetables"},
}

var eventTitles = []string{
	"Rural Women Entrepreneurs Showcase", "Village Craft Mela",
	"Sustainable Livelihoods Fair", "Skill Building Bazaar",
	"Self Help Group Expo", "Rural Innovation Summit",
}

var targetAudiences = []string{
	"Corporate CSR teams", "Impact investors and CSR heads",
	"Procurement leads of FMCG companies", "CSR and sustainability officers",
}

// GenerateTestDataHandler seeds demo NGOs, business owners with listings,
// corporates, events and a few interest expressions, all through the same
// core operations the real API uses.
func GenerateTestDataHandler(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := 5
		if countParam := r.URL.Query().Get("count"); countParam != "" {
			parsedCount, err := strconv.Atoi(countParam)
			if err != nil || parsedCount < 1 || parsedCount > 50 {
				respond.Error(w, models.Validationf("count must be between 1 and 50"))
				return
			}
			count = parsedCount
		}

		ctx := r.Context()
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			respond.Error(w, err)
			return
		}

		newUser := func(role string) (models.User, error) {
			u := models.User{
				ID:           uuid.NewString(),
				Email:        gofakeit.Email(),
				PasswordHash: string(hashed),
				Name:         gofakeit.Name(),
				Role:         role,
				Organization: gofakeit.Company(),
				Phone:        gofakeit.Phone(),
				CreatedAt:    time.Now().UTC(),
			}
			if err := s.CreateUser(ctx, u); err != nil {
				return models.User{}, err
			}
			return u, nil
		}

		var ngos, owners, corporates []models.User
		var businesses []models.Business

		for i := 0; i < count; i++ {
			ngo, err := newUser(models.RoleNGO)
			if err != nil {
				respond.Error(w, err)
				return
			}
			ngos = append(ngos, ngo)

			owner, err := newUser(models.RoleBusinessOwner)
			if err != nil {
				respond.Error(w, err)
				return
			}
			owners = append(owners, owner)

			corporate, err := newUser(models.RoleCorporate)
			if err != nil {
				respond.Error(w, err)
				return
			}
			corporates = append(corporates, corporate)

			category := models.BusinessCategories[rand.Intn(len(models.BusinessCategories))]
			employees := rand.Intn(20) + 1
			b, err := matching.RegisterBusiness(ctx, s, owner, matching.BusinessInput{
				Name:           gofakeit.Company(),
				Description:    gofakeit.Sentence(12),
				Category:       category,
				Location:       villageLocations[rand.Intn(len(villageLocations))],
				RevenueRange:   models.RevenueRanges[rand.Intn(len(models.RevenueRanges))],
				EmployeesCount: &employees,
				Products:       productNames[category],
			})
			if err != nil {
				respond.Error(w, err)
				return
			}
			businesses = append(businesses, b)
		}

		var events []models.Event
		for _, ngo := range ngos {
			// Each event showcases a random prefix of the registry.
			selected := make([]string, 0, len(businesses))
			for _, b := range businesses[:rand.Intn(len(businesses))+1] {
				selected = append(selected, b.ID)
			}
			e, err := matching.CreateEvent(ctx, s, ngo, matching.EventInput{
				Title:               eventTitles[rand.Intn(len(eventTitles))],
				Description:         gofakeit.Sentence(15),
				InitiativeType:      models.InitiativeTypes[rand.Intn(len(models.InitiativeTypes))],
				Date:                time.Now().AddDate(0, 0, rand.Intn(60)+7),
				Location:            villageLocations[rand.Intn(len(villageLocations))],
				TargetAudience:      targetAudiences[rand.Intn(len(targetAudiences))],
				SelectedBusinessIDs: selected,
			})
			if err != nil {
				respond.Error(w, err)
				return
			}
			events = append(events, e)
		}

		connections := 0
		for _, corporate := range corporates {
			e := events[rand.Intn(len(events))]
			if len(e.ParticipatingBusinesses) == 0 {
				continue
			}
			ref := e.ParticipatingBusinesses[rand.Intn(len(e.ParticipatingBusinesses))]
			_, err := matching.ExpressInterest(ctx, s, corporate, e.ID, ref.BusinessID, "Generated interest")
			if models.IsConflict(err) {
				continue
			}
			if err != nil {
				respond.Error(w, err)
				return
			}
			connections++
		}

		log.Printf("Generated %d NGOs, %d owners, %d corporates, %d events, %d connections",
			len(ngos), len(owners), len(corporates), len(events), connections)

		respond.JSON(w, http.StatusOK, map[string]int{
			"ngos":        len(ngos),
			"owners":      len(owners),
			"corporates":  len(corporates),
			"businesses":  len(businesses),
			"events":      len(events),
			"connections": connections,
		})
	}
}
