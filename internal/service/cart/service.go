package cart

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bookstore/internal/domain"
	"github.com/vladislavdragonenkov/bookstore/internal/metrics"
	"github.com/vladislavdragonenkov/bookstore/internal/service/catalog"
	"github.com/vladislavdragonenkov/bookstore/internal/service/pricing"
)

// AddItemOutcome различает исходы добавления товара в корзину.
type AddItemOutcome string

const (
	// AddItemCreated — корзина создана, позиция добавлена.
	AddItemCreated AddItemOutcome = "created"
	// AddItemInsufficientStock — остатка книги не хватает; ничего не создано.
	AddItemInsufficientStock AddItemOutcome = "insufficient_stock"
	// AddItemCartAlreadyExists — под ключом уже есть корзина; ничего не создано.
	AddItemCartAlreadyExists AddItemOutcome = "cart_already_exists"
)

// AddItemResult — тегированный результат AddItem: вызывающий различает
// «создано», «не хватает остатка» и «корзина уже существует».
type AddItemResult struct {
	Outcome AddItemOutcome
	CartKey string
	Cart    *domain.Cart
}

// View — результат чтения корзины со сверкой: скорректированная корзина,
// строки для UI, отброшенные позиции и итоги. Живёт один запрос и никогда
// не записывается обратно в хранилище.
type View struct {
	CartKey string
	Cart    domain.Cart
	Display []domain.CartItemDisplay
	Removed []domain.RemovedItem
	Summary domain.CartSummary
}

// Service оркестрирует хранилище корзин, каталог, сверку и калькулятор итогов.
type Service struct {
	carts         domain.CartRepository
	catalog       *catalog.Service
	shippingMinor int64
	logger        *log.Entry
	metrics       *metrics.CommerceMetrics
}

// NewService конструирует сервис корзин.
func NewService(
	carts domain.CartRepository,
	catalogSvc *catalog.Service,
	shippingMinor int64,
	logger *log.Entry,
	m *metrics.CommerceMetrics,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "cart")
	}
	return &Service{
		carts:         carts,
		catalog:       catalogSvc,
		shippingMinor: shippingMinor,
		logger:        logger,
		metrics:       m,
	}
}

// AddItem создаёт новую корзину с одной позицией, если остатка хватает и под
// ключом ещё нет корзины. Пустой ключ всегда читается как «корзины нет».
// Существующая корзина не инкрементируется: исходом будет CartAlreadyExists.
func (s *Service) AddItem(bookID string, qty int32, cartKey string) (*AddItemResult, error) {
	if bookID == "" {
		return nil, domain.ErrBookIDRequired
	}
	if qty <= 0 {
		return nil, domain.ErrQtyInvalid
	}

	enough, err := s.catalog.HasEnoughStock(bookID, qty)
	if err != nil {
		return nil, err
	}
	if !enough {
		s.metrics.RecordAddItemRejected(string(AddItemInsufficientStock))
		return &AddItemResult{Outcome: AddItemInsufficientStock}, nil
	}

	existing, err := s.carts.Get(cartKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.metrics.RecordAddItemRejected(string(AddItemCartAlreadyExists))
		return &AddItemResult{Outcome: AddItemCartAlreadyExists}, nil
	}

	newKey := uuid.NewString()
	created, err := s.carts.CreateIfAbsent(newKey, domain.CartItem{BookID: bookID, Qty: qty})
	if err != nil {
		// Проигрыш гонки на CreateIfAbsent — авторитетный сигнал конфликта,
		// проверка существования выше была только подсказкой.
		if domain.IsConflict(err) {
			s.metrics.RecordAddItemRejected(string(AddItemCartAlreadyExists))
			return &AddItemResult{Outcome: AddItemCartAlreadyExists}, nil
		}
		return nil, err
	}

	s.metrics.RecordCartCreated()
	s.logger.WithFields(log.Fields{
		"cart_key": newKey,
		"book_id":  bookID,
	}).Debug("cart created")

	return &AddItemResult{
		Outcome: AddItemCreated,
		CartKey: newKey,
		Cart:    created,
	}, nil
}

// GetCart читает корзину, сверяет её со свежим срезом каталога и строит
// представление для UI. Возвращает nil, если корзины нет. Сверенная корзина
// не сохраняется обратно: сверка действует только на время чтения.
func (s *Service) GetCart(cartKey string) (*View, error) {
	reconciled, err := s.reconciledItems(cartKey)
	if err != nil || reconciled == nil {
		return nil, err
	}

	s.metrics.RecordCartView()

	return &View{
		CartKey: cartKey,
		Cart:    domain.Cart{Items: reconciled.result.Surviving},
		Display: DisplayRows(reconciled.result.Surviving, reconciled.books),
		Removed: reconciled.result.Removed,
		Summary: pricing.CartSummary(reconciled.result.Surviving, reconciled.books),
	}, nil
}

// GetCheckoutSummary проходит тот же конвейер чтения и сверки, но возвращает
// итог к оплате: сумма позиций плюс фиксированная доставка.
func (s *Service) GetCheckoutSummary(cartKey string) (*domain.CheckoutSummary, error) {
	reconciled, err := s.reconciledItems(cartKey)
	if err != nil || reconciled == nil {
		return nil, err
	}

	summary := pricing.CheckoutSummary(reconciled.result.Surviving, reconciled.books, s.shippingMinor)
	return &summary, nil
}

// GetCartForOrder возвращает сырую корзину без сверки. Используется только
// оркестрацией заказа; nil при пустом ключе или отсутствии корзины.
func (s *Service) GetCartForOrder(cartKey string) (*domain.Cart, error) {
	return s.carts.Get(cartKey)
}

// ShippingMinor возвращает настроенную стоимость доставки.
func (s *Service) ShippingMinor() int64 {
	return s.shippingMinor
}

type reconciledCart struct {
	result ReconcileResult
	books  domain.BookMap
}

// reconciledItems — общий конвейер GetCart и GetCheckoutSummary:
// чтение корзины, выборка каталога ровно по её идентификаторам, сверка.
// Возвращает nil без обращения к каталогу, если корзины нет.
func (s *Service) reconciledItems(cartKey string) (*reconciledCart, error) {
	stored, err := s.carts.Get(cartKey)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, nil
	}

	books, err := s.catalog.BooksByIDs(stored.BookIDs())
	if err != nil {
		return nil, err
	}

	bookMap := domain.NewBookMap(books)
	result := Reconcile(*stored, bookMap)
	for _, removed := range result.Removed {
		s.metrics.RecordItemRemoved(string(removed.Reason))
	}

	return &reconciledCart{result: result, books: bookMap}, nil
}
