package domain

// CartRepository описывает требования к хранилищу корзин поверх key-value backend'а.
type CartRepository interface {
	// Get возвращает корзину или nil, если её нет. Пустой ключ читается как
	// «корзины нет» без обращения к backend'у.
	Get(key string) (*Cart, error)
	// CreateIfAbsent атомарно создаёт корзину с одной начальной позицией.
	// Возвращает ErrCartAlreadyExists, если под ключом уже лежит корзина,
	// и ErrCartKeyRequired при пустом ключе. Это единственная точка
	// линеаризации для гонки создания корзины.
	CreateIfAbsent(key string, initial CartItem) (*Cart, error)
	// Overwrite безусловно перезаписывает корзину под ключом.
	// Возвращает ErrCartKeyRequired при пустом ключе.
	Overwrite(key string, cart Cart) (*Cart, error)
}

// CatalogGateway описывает чтение живого каталога книг.
// Каталог мутирует независимо: две подряд выборки могут разойтись.
type CatalogGateway interface {
	// FetchMany возвращает записи каталога для найденных идентификаторов.
	// Отсутствующие идентификаторы просто опускаются, это не ошибка.
	// Пустой вход возвращает пустой результат без обращения к backend'у.
	FetchMany(ids []string) ([]Book, error)
	// FetchOne возвращает запись каталога или nil, если книги нет.
	FetchOne(id string) (*Book, error)
	// DefaultBooks возвращает витринную выборку каталога, не больше limit записей.
	DefaultBooks(limit int) ([]Book, error)
}

// PaymentGateway описывает взаимодействие с платёжным провайдером.
type PaymentGateway interface {
	// CreateSession открывает платёжную сессию на сумму в минимальных единицах.
	// Пустой идентификатор сессии в ответе провайдера — фатальная ошибка.
	CreateSession(amountMinor int64, currency, referenceID string) (string, error)
	// MarkSessionResult передаёт провайдеру исход оплаты по сессии.
	MarkSessionResult(sessionID string, success bool) (bool, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ErrOrderAlreadyExists,
	// если запись с таким ID уже существует.
	Create(order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(id string) (Order, error)
}
