package telegram

import (
	"fmt"

	"github.com/mymmrac/telego"
	"github.com/ypbrand/storebot/internal/config"
)

// WebAppKind selects which screen a web-app launch message opens.
type WebAppKind string

const (
	WebAppAdmin WebAppKind = "admin"
	WebAppStore WebAppKind = "store"
)

// Storefront tabs addressable through deep links. The query parameter
// names are the handoff contract with the web application: it reads
// ?admin=true and ?tab=... to pick its initial screen.
const (
	tabCatalog   = "catalog"
	tabCart      = "cart"
	tabProfile   = "profile"
	tabFavorites = "favorites"
)

// defaultUserName подставляется, когда у отправителя нет имени
const defaultUserName = "Пользователь"

// Builder constructs the outbound message for each conversational
// scenario. All constructors are pure: same inputs, same message.
type Builder struct {
	webAppURL  string
	supportURL string
}

// NewBuilder creates a builder with the storefront links from config.
func NewBuilder(cfg config.StoreConfig) *Builder {
	return &Builder{
		webAppURL:  cfg.WebAppURL,
		supportURL: cfg.SupportURL,
	}
}

// deepLink builds a storefront URL with the given query string appended.
func (b *Builder) deepLink(query string) string {
	if query == "" {
		return b.webAppURL
	}
	return b.webAppURL + "?" + query
}

func (b *Builder) tabLink(tab string) string {
	return b.deepLink("tab=" + tab)
}

func (b *Builder) adminLink() string {
	return b.deepLink("admin=true")
}

// Welcome is the reply to /start.
func (b *Builder) Welcome(chatID int64, userName string) Outbound {
	if userName == "" {
		userName = defaultUserName
	}

	text := fmt.Sprintf(`🚀 Добро пожаловать в <b>YP BRAND</b>, %s!

Премиальные аксессуары и техника по лучшим ценам.

🎁 <b>Актуальные предложения:</b>
• Розыгрыш iPhone 15 Pro до 30 июля
• Кэшбэк YP-монетами 1.2%% с каждой покупки
• Бесплатная доставка от 3000₽

Выберите действие:`, userName)

	return Outbound{
		ChatID:    chatID,
		Text:      text,
		ParseMode: telego.ModeHTML,
		Keyboard: [][]Button{
			{
				{Text: "🛍 Открыть магазин", WebAppURL: b.webAppURL},
			},
			{
				{Text: "📦 Каталог", CallbackData: "open_store"},
				{Text: "🎁 Розыгрыш", CallbackData: "giveaway_info"},
			},
			{
				{Text: "💬 Поддержка", URL: b.supportURL},
			},
		},
	}
}

// Admin is the reply to /admin for allow-listed senders.
func (b *Builder) Admin(chatID int64) Outbound {
	text := `👑 <b>Админ-панель YP BRAND</b>

Управляйте своим магазином прямо из Telegram!

📊 <b>Доступные функции:</b>
• Добавление и редактирование товаров
• Управление заказами и статистикой
• Настройка розыгрышей и акций
• Конфигурация магазина

Откройте веб-приложение для полного управления:`

	return Outbound{
		ChatID:    chatID,
		Text:      text,
		ParseMode: telego.ModeHTML,
		Keyboard: [][]Button{
			{
				{Text: "⚙️ Открыть админ-панель", WebAppURL: b.adminLink()},
			},
			{
				{Text: "📊 Статистика", CallbackData: "admin_stats"},
				{Text: "📦 Товары", CallbackData: "admin_products"},
			},
			{
				{Text: "🛒 Заказы", CallbackData: "admin_orders"},
				{Text: "🎁 Розыгрыши", CallbackData: "admin_giveaways"},
			},
		},
	}
}

// AdminRefused is the plain-text refusal sent to senders outside the
// admin allow-list.
func (b *Builder) AdminRefused(chatID int64) Outbound {
	return Outbound{
		ChatID: chatID,
		Text:   "❌ У вас нет прав администратора.",
	}
}

// Catalog is the reply to /catalog.
func (b *Builder) Catalog(chatID int64) Outbound {
	text := `📦 <b>Каталог YP BRAND</b>

🔥 <b>Популярные категории:</b>

🎧 <b>Аудио и звук</b>
• Беспроводные наушники от 3999₽
• Портативные колонки от 2499₽

🔌 <b>Кабели и зарядки</b>
• USB-C кабели премиум от 1299₽
• Быстрые зарядки 65W от 1899₽

🔋 <b>Power Bank</b>
• 10000mAh от 2499₽
• Беспроводная зарядка от 3299₽

Откройте полный каталог в приложении:`

	return Outbound{
		ChatID:    chatID,
		Text:      text,
		ParseMode: telego.ModeHTML,
		Keyboard: [][]Button{
			{
				{Text: "🛍 Открыть каталог", WebAppURL: b.tabLink(tabCatalog)},
			},
			{
				{Text: "🎧 Аудио", CallbackData: "category_audio"},
				{Text: "🔌 Кабели", CallbackData: "category_cables"},
			},
			{
				{Text: "🔋 Power Bank", CallbackData: "category_powerbank"},
				{Text: "📱 Аксессуары", CallbackData: "category_accessories"},
			},
		},
	}
}

// Orders is the reply to /orders.
func (b *Builder) Orders(chatID int64) Outbound {
	text := `🛒 <b>Ваши заказы</b>

📋 <b>Последние заказы:</b>

• Заказ #1234 - 3299₽ (В доставке)
• Заказ #1223 - 1899₽ (Выполнен)

💰 <b>YP-монеты:</b> 156 ₽
🎯 <b>Кэшбэк:</b> 1.2% с каждой покупки

Откройте приложение для детального просмотра:`

	return Outbound{
		ChatID:    chatID,
		Text:      text,
		ParseMode: telego.ModeHTML,
		Keyboard: [][]Button{
			{
				{Text: "📱 Открыть заказы", WebAppURL: b.tabLink(tabProfile)},
			},
			{
				{Text: "🛒 В корзину", WebAppURL: b.tabLink(tabCart)},
				{Text: "❤️ Избранное", WebAppURL: b.tabLink(tabFavorites)},
			},
		},
	}
}

// Support is the reply to /support.
func (b *Builder) Support(chatID int64) Outbound {
	text := `💬 <b>Поддержка YP BRAND</b>

Мы всегда готовы помочь!

🕐 <b>Время работы:</b> 9:00 - 21:00 (МСК)
📞 <b>Ответ в течение:</b> 5-15 минут

❓ <b>Частые вопросы:</b>
• Доставка 1-3 дня по России
• Оплата картой, наличными, YP-монетами
• Возврат в течение 14 дней

Свяжитесь с нами:`

	return Outbound{
		ChatID:    chatID,
		Text:      text,
		ParseMode: telego.ModeHTML,
		Keyboard: [][]Button{
			{
				{Text: "💬 Написать в поддержку", URL: b.supportURL},
			},
			{
				{Text: "📞 Заказать звонок", CallbackData: "request_call"},
				{Text: "❓ FAQ", CallbackData: "show_faq"},
			},
		},
	}
}

// UnknownCommand is the fallthrough reply for unmatched text.
func (b *Builder) UnknownCommand(chatID int64) Outbound {
	text := `🤖 Не понимаю эту команду.

Используйте:
/start - Главное меню
/catalog - Каталог товаров
/orders - Мои заказы
/support - Поддержка

Или просто откройте магазин:`

	return Outbound{
		ChatID: chatID,
		Text:   text,
		Keyboard: [][]Button{
			{
				{Text: "🛍 Открыть магазин", WebAppURL: b.webAppURL},
			},
		},
	}
}

// CartAdded confirms an add_to_cart callback.
func (b *Builder) CartAdded(chatID int64) Outbound {
	text := `✅ Товар добавлен в корзину!

Откройте приложение для оформления заказа:`

	return Outbound{
		ChatID: chatID,
		Text:   text,
		Keyboard: [][]Button{
			{
				{Text: "🛒 Оформить заказ", WebAppURL: b.tabLink(tabCart)},
			},
		},
	}
}

// WebApp is the launch message for open_admin / open_store callbacks.
func (b *Builder) WebApp(chatID int64, kind WebAppKind) Outbound {
	if kind == WebAppAdmin {
		return Outbound{
			ChatID: chatID,
			Text:   "Открываю админ-панель...",
			Keyboard: [][]Button{
				{
					{Text: "⚙️ Админ-панель", WebAppURL: b.adminLink()},
				},
			},
		}
	}

	return Outbound{
		ChatID: chatID,
		Text:   "Открываю магазин...",
		Keyboard: [][]Button{
			{
				{Text: "🛍 Магазин", WebAppURL: b.webAppURL},
			},
		},
	}
}
