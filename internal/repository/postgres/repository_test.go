package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"

	"myShop/domain"
	"myShop/pkg/database/dbtest"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RepositorySuite struct {
	suite.Suite
	ctx      context.Context
	db       *gorm.DB
	users    *UserRepository
	products *ProductRepository
	carts    *CartRepository
	orders   *OrdersRepository
	tx       *Transactor
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = dbtest.New(s.T())
	s.users = NewUserRepository(s.db)
	s.products = NewProductRepository(s.db)
	s.carts = NewCartRepository(s.db)
	s.orders = NewOrdersRepository(s.db)
	s.tx = NewTransactor(s.db)
}

func (s *RepositorySuite) newUser(email string) domain.User {
	u := domain.User{Email: email, HashedPassword: "x", IsActive: true}
	s.Require().NoError(s.users.Create(s.ctx, &u))
	return u
}

func (s *RepositorySuite) newProduct(name string, price float64, stock int, active bool) domain.Product {
	p := domain.Product{Name: name, Price: price, StockQuantity: stock, IsActive: active, Category: "general"}
	s.Require().NoError(s.products.Create(s.ctx, &p))
	return p
}

func (s *RepositorySuite) TestUser_CreateAndFind() {
	u := s.newUser("alice@example.com")

	byID, err := s.users.FindByID(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Equal("alice@example.com", byID.Email)

	byEmail, err := s.users.FindByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)

	_, err = s.users.FindByEmail(s.ctx, "nobody@example.com")
	s.ErrorIs(err, domain.ErrUserNotFound)

	_, err = s.users.FindByID(s.ctx, 999)
	s.ErrorIs(err, domain.ErrUserNotFound)
}

func (s *RepositorySuite) TestUser_DuplicateEmail() {
	s.newUser("alice@example.com")

	dup := domain.User{Email: "alice@example.com", HashedPassword: "y", IsActive: true}
	err := s.users.Create(s.ctx, &dup)
	s.ErrorIs(err, domain.ErrEmailTaken)

	var count int64
	s.Require().NoError(s.db.Model(&domain.User{}).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *RepositorySuite) TestProduct_FindActiveSkipsInactive() {
	a := s.newProduct("A", 1, 1, true)
	s.newProduct("B", 1, 1, false)
	c := s.newProduct("C", 1, 1, true)

	list, err := s.products.FindActive(s.ctx, 0, 10)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(a.ID, list[0].ID)
	s.Equal(c.ID, list[1].ID)

	page, err := s.products.FindActive(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(c.ID, page[0].ID)
}

func (s *RepositorySuite) TestProduct_FindByIDIgnoresActiveFlag() {
	p := s.newProduct("hidden", 3, 1, false)

	got, err := s.products.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.False(got.IsActive)

	_, err = s.products.FindByID(s.ctx, 12345)
	s.ErrorIs(err, domain.ErrProductNotFound)
}

func (s *RepositorySuite) TestProduct_DecrementStock() {
	p := s.newProduct("A", 1, 5, true)

	s.Require().NoError(s.products.DecrementStock(s.ctx, p.ID, 3))
	got, err := s.products.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(2, got.StockQuantity)

	// no floor at this layer
	s.Require().NoError(s.products.DecrementStock(s.ctx, p.ID, 4))
	got, _ = s.products.FindByID(s.ctx, p.ID)
	s.Equal(-2, got.StockQuantity)

	s.ErrorIs(s.products.DecrementStock(s.ctx, 999, 1), domain.ErrProductNotFound)
}

func (s *RepositorySuite) TestCategory_FindAll() {
	s.Require().NoError(s.products.Create(s.ctx, &domain.Product{Name: "a", Category: "tea", IsActive: true}))
	s.Require().NoError(s.products.Create(s.ctx, &domain.Product{Name: "b", Category: "coffee", IsActive: true}))
	s.Require().NoError(s.products.Create(s.ctx, &domain.Product{Name: "c", Category: "tea", IsActive: true}))
	s.Require().NoError(s.products.Create(s.ctx, &domain.Product{Name: "d", Category: "hidden", IsActive: false}))
	s.Require().NoError(s.products.Create(s.ctx, &domain.Product{Name: "e", IsActive: true}))

	categories, err := NewCategoryRepository(s.db).FindAll(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"coffee", "tea"}, categories)
}

func (s *RepositorySuite) TestCart_UpsertIncrements() {
	u := s.newUser("alice@example.com")
	p := s.newProduct("A", 10, 5, true)

	first, err := s.carts.Upsert(s.ctx, u.ID, p.ID, 1)
	s.Require().NoError(err)
	s.Equal(1, first.Quantity)
	s.Equal("A", first.Product.Name)

	second, err := s.carts.Upsert(s.ctx, u.ID, p.ID, 2)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal(3, second.Quantity)

	items, err := s.carts.FindByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(3, items[0].Quantity)
}

func (s *RepositorySuite) TestCart_ConcurrentUpsertKeepsOneRow() {
	u := s.newUser("alice@example.com")
	p := s.newProduct("A", 10, 5, true)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.carts.Upsert(s.ctx, u.ID, p.ID, 1)
			s.NoError(err)
		}()
	}
	wg.Wait()

	items, err := s.carts.FindByUser(s.ctx, u.ID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(8, items[0].Quantity)
}

func (s *RepositorySuite) TestCart_DeleteScopedToOwner() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	p := s.newProduct("A", 10, 5, true)

	item, err := s.carts.Upsert(s.ctx, alice.ID, p.ID, 1)
	s.Require().NoError(err)

	s.ErrorIs(s.carts.Delete(s.ctx, item.ID, bob.ID), domain.ErrCartItemNotFound)

	items, err := s.carts.FindByUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(items, 1)

	s.Require().NoError(s.carts.Delete(s.ctx, item.ID, alice.ID))
	s.ErrorIs(s.carts.Delete(s.ctx, item.ID, alice.ID), domain.ErrCartItemNotFound)
}

func (s *RepositorySuite) TestCart_DeleteByUser() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	p := s.newProduct("A", 10, 5, true)

	_, err := s.carts.Upsert(s.ctx, alice.ID, p.ID, 1)
	s.Require().NoError(err)
	_, err = s.carts.Upsert(s.ctx, bob.ID, p.ID, 1)
	s.Require().NoError(err)

	s.Require().NoError(s.carts.DeleteByUser(s.ctx, alice.ID))
	s.Require().NoError(s.carts.DeleteByUser(s.ctx, alice.ID))

	items, _ := s.carts.FindByUser(s.ctx, alice.ID)
	s.Empty(items)
	items, _ = s.carts.FindByUser(s.ctx, bob.ID)
	s.Len(items, 1)
}

func (s *RepositorySuite) TestOrders_CreateAndFind() {
	alice := s.newUser("alice@example.com")
	bob := s.newUser("bob@example.com")
	p := s.newProduct("A", 10, 5, true)

	order := domain.Order{UserID: alice.ID, TotalAmount: 20, Status: domain.OrderStatusPending}
	s.Require().NoError(s.orders.Create(s.ctx, &order))
	s.Require().NoError(s.orders.CreateItem(s.ctx, &domain.OrderItem{OrderID: order.ID, ProductID: p.ID, Quantity: 2, Price: 10}))

	got, err := s.orders.FindByID(s.ctx, order.ID, alice.ID)
	s.Require().NoError(err)
	s.Require().Len(got.OrderItems, 1)
	s.Equal("A", got.OrderItems[0].Product.Name)

	_, err = s.orders.FindByID(s.ctx, order.ID, bob.ID)
	s.ErrorIs(err, domain.ErrOrderNotFound)

	list, err := s.orders.FindByUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Len(list, 1)

	list, err = s.orders.FindByUser(s.ctx, bob.ID)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RepositorySuite) TestTransactor_RollsBackOnError() {
	p := s.newProduct("A", 10, 5, true)
	boom := errors.New("boom")

	err := s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.products.DecrementStock(ctx, p.ID, 5); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.products.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(5, got.StockQuantity)
}

func (s *RepositorySuite) TestTransactor_Commits() {
	p := s.newProduct("A", 10, 5, true)

	err := s.tx.WithinTransaction(s.ctx, func(ctx context.Context) error {
		locked, err := s.products.FindByIDForUpdate(ctx, p.ID)
		if err != nil {
			return err
		}
		return s.products.DecrementStock(ctx, locked.ID, 2)
	})
	s.Require().NoError(err)

	got, _ := s.products.FindByID(s.ctx, p.ID)
	s.Equal(3, got.StockQuantity)
}

func (s *RepositorySuite) TestHealth_Ping() {
	h := NewHealthRepository(s.db)
	s.NoError(h.Ping(s.ctx))
	s.Equal("sqlite", h.Dialect())
}
