package integration

import (
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
	"github.com/vladislavdragonenkov/bookstore/internal/service/cart"
	"github.com/vladislavdragonenkov/bookstore/internal/service/catalog"
	"github.com/vladislavdragonenkov/bookstore/internal/service/order"
	"github.com/vladislavdragonenkov/bookstore/internal/service/payment"
	"github.com/vladislavdragonenkov/bookstore/internal/storage/memory"
)

// ShoppingLifecycleTestSuite проверяет полный путь покупателя:
// добавление в корзину, просмотр, итог к оплате, размещение заказа.
type ShoppingLifecycleTestSuite struct {
	suite.Suite
	gateway  *catalog.MockGateway
	carts    domain.CartRepository
	cartSvc  *cart.Service
	payments *payment.MockGateway
	orders   domain.OrderRepository
	workflow *order.Workflow
}

func (suite *ShoppingLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	logger := baseLogger.WithField("component", "integration-test")

	suite.gateway = catalog.NewMockGateway(
		domain.Book{ID: "b1", Title: "Dune", PriceMinor: 10, Stock: 5},
		domain.Book{ID: "b2", Title: "Solaris", PriceMinor: 15, Stock: 3},
	)
	catalogSvc := catalog.NewService(suite.gateway, logger)

	suite.carts = memory.NewCartRepository()
	suite.cartSvc = cart.NewService(suite.carts, catalogSvc, 100, logger, nil)

	suite.payments = payment.NewMockGateway("sess-integration")
	suite.orders = memory.NewOrderRepository()
	suite.workflow = order.NewWorkflow(
		suite.cartSvc,
		catalogSvc,
		suite.payments,
		suite.orders,
		nil,
		logger,
		nil,
	)
}

func (suite *ShoppingLifecycleTestSuite) TestSuccessfulShoppingLifecycle() {
	// 1. Создаём корзину добавлением первой книги
	added, err := suite.cartSvc.AddItem("b1", 4, "")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), cart.AddItemCreated, added.Outcome)
	require.NotEmpty(suite.T(), added.CartKey)

	// 2. Докладываем вторую позицию напрямую в хранилище: подсистема
	// не наращивает существующую корзину через AddItem
	_, err = suite.carts.Overwrite(added.CartKey, domain.Cart{Items: []domain.CartItem{
		{BookID: "b1", Qty: 4},
		{BookID: "b2", Qty: 3},
	}})
	require.NoError(suite.T(), err)

	// 3. Просмотр корзины: обе позиции живы
	view, err := suite.cartSvc.GetCart(added.CartKey)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), view.Cart.Items, 2)
	require.Empty(suite.T(), view.Removed)
	require.Equal(suite.T(), int32(7), view.Summary.TotalItems)
	require.Equal(suite.T(), int64(85), view.Summary.TotalPriceMinor)

	// 4. Итог к оплате с доставкой
	checkout, err := suite.cartSvc.GetCheckoutSummary(added.CartKey)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), int64(185), checkout.GrandTotalMinor)

	// 5. Размещаем заказ
	placed, err := suite.workflow.PlaceOrder(added.CartKey, "221B Baker Street")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), domain.OrderStatusPending, placed.Status)
	require.Equal(suite.T(), int64(185), placed.AmountMinor)
	require.Equal(suite.T(), "sess-integration", placed.PaymentSessionID)
	require.Equal(suite.T(), int64(185), suite.payments.LastAmountMinor)

	// 6. Заказ читается обратно
	stored, err := suite.workflow.GetOrder(placed.ID)
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), placed.ID, stored.ID)
	require.Len(suite.T(), stored.Items, 2)
	require.Equal(suite.T(), "Dune", stored.Items[0].Title)
}

func (suite *ShoppingLifecycleTestSuite) TestStockDropReconciliation() {
	added, err := suite.cartSvc.AddItem("b2", 3, "")
	require.NoError(suite.T(), err)
	require.Equal(suite.T(), cart.AddItemCreated, added.Outcome)

	// Остаток книги падает после добавления в корзину
	book := suite.gateway.Books["b2"]
	book.Stock = 1
	suite.gateway.Books["b2"] = book

	// Просмотр отбрасывает позицию целиком, без урезания количества
	view, err := suite.cartSvc.GetCart(added.CartKey)
	require.NoError(suite.T(), err)
	require.Empty(suite.T(), view.Cart.Items)
	require.Len(suite.T(), view.Removed, 1)
	require.Equal(suite.T(), domain.RemovalReasonInsufficientStock, view.Removed[0].Reason)
	require.Equal(suite.T(), int64(0), view.Summary.TotalPriceMinor)

	// Хранилище не тронуто: восстановление остатка возвращает позицию
	book.Stock = 3
	suite.gateway.Books["b2"] = book

	view, err = suite.cartSvc.GetCart(added.CartKey)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), view.Cart.Items, 1)
	require.Empty(suite.T(), view.Removed)
}

func (suite *ShoppingLifecycleTestSuite) TestBookVanishesBeforeOrder() {
	added, err := suite.cartSvc.AddItem("b1", 2, "")
	require.NoError(suite.T(), err)

	// Книга исчезает из каталога до оформления
	delete(suite.gateway.Books, "b1")

	placed, err := suite.workflow.PlaceOrder(added.CartKey, "addr")
	require.NoError(suite.T(), err)
	require.Len(suite.T(), placed.Items, 1)
	require.Equal(suite.T(), "Unknown Title", placed.Items[0].Title)
	require.Equal(suite.T(), int64(0), placed.Items[0].PriceMinor)
	// Сумма равна одной доставке
	require.Equal(suite.T(), int64(100), placed.AmountMinor)
}

func (suite *ShoppingLifecycleTestSuite) TestPaymentFailureLeavesNoOrder() {
	added, err := suite.cartSvc.AddItem("b1", 1, "")
	require.NoError(suite.T(), err)

	suite.payments.CreateErr = domain.ErrPaymentSessionFailed

	_, err = suite.workflow.PlaceOrder(added.CartKey, "addr")
	require.ErrorIs(suite.T(), err, domain.ErrPaymentSessionFailed)

	// Корзина переживает неудачное оформление
	view, err := suite.cartSvc.GetCart(added.CartKey)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), view.Cart.Items, 1)
}

func TestShoppingLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingLifecycleTestSuite))
}
