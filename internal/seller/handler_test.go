package seller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/chaow95/storefront-backend/internal/user"
)

type fakeProfiles struct {
	users map[int]user.User
}

func (f *fakeProfiles) GetByID(id int) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func makeSellerApp(handler *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			if id, err := strconv.Atoi(v); err == nil {
				c.Locals("user", &jwt.Token{Claims: jwt.MapClaims{"user_id": id}})
			}
		}
		return c.Next()
	})
	handler.RegisterProtectedRoutes(app)
	return app
}

func newSellerFixture() (*fiber.App, *InMemoryRepository) {
	repo := NewInMemoryRepository(nil)
	profiles := &fakeProfiles{users: map[int]user.User{
		10: {ID: 10, Role: user.RoleSeller},
		11: {ID: 11, Role: user.RoleSeller},
		20: {ID: 20, Role: user.RoleCustomer},
	}}
	handler := NewHandler(NewService(repo), profiles)
	return makeSellerApp(handler), repo
}

func TestSellerRoutesRequireSellerRole(t *testing.T) {
	app, _ := newSellerFixture()

	// no token at all
	res, err := app.Test(httptest.NewRequest("GET", "/api/v1/seller/products", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", res.StatusCode)
	}

	// authenticated customer is still forbidden
	req := httptest.NewRequest("GET", "/api/v1/seller/products", nil)
	req.Header.Set("X-User-ID", "20")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer role, got %d", res.StatusCode)
	}
}

func TestSellerMutationsRequireSellerRole(t *testing.T) {
	app, repo := newSellerFixture()

	// a customer POST must be refused outright, not written under a zero
	// seller id
	body := `{"name":"Side Table","price":40,"stockQuantity":2}`
	req := httptest.NewRequest("POST", "/api/v1/seller/products", strings.NewReader(body))
	req.Header.Set("X-User-ID", "20")
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer POST, got %d", res.StatusCode)
	}
	for _, id := range []int{0, 20} {
		got, err := repo.ListBySeller(context.Background(), id)
		if err != nil {
			t.Fatalf("list seller %d: %v", id, err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no products persisted for seller %d, got %+v", id, got)
		}
	}

	// same for DELETE: the service must not run at all
	seeded, err := repo.Create(context.Background(), Product{ID: "p1", SellerID: 10, Name: "Desk"})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	req = httptest.NewRequest("DELETE", "/api/v1/seller/products/"+seeded.ID, nil)
	req.Header.Set("X-User-ID", "20")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for customer DELETE, got %d", res.StatusCode)
	}
	if got, _ := repo.ListBySeller(context.Background(), 10); len(got) != 1 {
		t.Fatalf("expected the seeded product to survive, got %+v", got)
	}
}

func TestSellerCreateListDelete(t *testing.T) {
	app, _ := newSellerFixture()

	body := `{"name":"Corner Bookshelf","description":"Oak","price":120.5,"stockQuantity":4}`
	req := httptest.NewRequest("POST", "/api/v1/seller/products", strings.NewReader(body))
	req.Header.Set("X-User-ID", "10")
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201 Created, got %d", res.StatusCode)
	}

	var created Product
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode created product: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected a generated product id")
	}
	if created.SellerID != 10 {
		t.Fatalf("expected seller id 10, got %d", created.SellerID)
	}

	// the owner sees it, another seller does not
	req = httptest.NewRequest("GET", "/api/v1/seller/products", nil)
	req.Header.Set("X-User-ID", "10")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	var mine []Product
	if err := json.NewDecoder(res.Body).Decode(&mine); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != created.ID {
		t.Fatalf("expected the created product in the owner's list, got %+v", mine)
	}

	req = httptest.NewRequest("GET", "/api/v1/seller/products", nil)
	req.Header.Set("X-User-ID", "11")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	var other []Product
	if err := json.NewDecoder(res.Body).Decode(&other); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected an empty list for the other seller, got %+v", other)
	}

	// another seller cannot delete it
	req = httptest.NewRequest("DELETE", "/api/v1/seller/products/"+created.ID, nil)
	req.Header.Set("X-User-ID", "11")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 deleting another seller's product, got %d", res.StatusCode)
	}

	// the owner can
	req = httptest.NewRequest("DELETE", "/api/v1/seller/products/"+created.ID, nil)
	req.Header.Set("X-User-ID", "10")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("delete request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204 No Content, got %d", res.StatusCode)
	}
}

func TestSellerCreateRejectsInvalidInput(t *testing.T) {
	app, _ := newSellerFixture()

	for name, body := range map[string]string{
		"blank name":     `{"name":"  ","price":10,"stockQuantity":1}`,
		"negative price": `{"name":"Lamp","price":-5,"stockQuantity":1}`,
		"negative stock": `{"name":"Lamp","price":5,"stockQuantity":-1}`,
	} {
		req := httptest.NewRequest("POST", "/api/v1/seller/products", strings.NewReader(body))
		req.Header.Set("X-User-ID", "10")
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request failed: %v", name, err)
		}
		if res.StatusCode != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, res.StatusCode)
		}
	}
}
