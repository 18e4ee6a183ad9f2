package service

import "school-report-bot/internal/platform/telegram"

// Кнопки пользовательского меню.
const (
	ButtonReportHooligan = "📢 Сообщить о хулигане"
	ButtonSuggestIdea    = "💡 Предложить идею"
	ButtonReportProblem  = "⚠️ Сообщить о проблеме"
)

// Кнопки админского меню.
const (
	ButtonBroadcast = "📣 Сделать рассылку"
	ButtonStats     = "📊 Статистика"
	ButtonSettings  = "⚙️ Настройки бота"
	ButtonBlock     = "⛔ Заблокировать пользователя"
	ButtonUnblock   = "✅ Разблокировать пользователя"
)

const (
	replyPermanentBlock   = "Вы заблокированы навсегда за нарушения."
	replyTempBlockApplied = "Вы получили временную блокировку за мат (1 час)."
	replyBroadcastDone    = "Рассылка выполнена."
	replyInvalidUserID    = "Введите корректный ID пользователя."
	replyBroadcastPrompt  = "Отправьте текст или медиа для рассылки."
	replyBlockPrompt      = "Отправьте ID пользователя для блокировки."
	replyUnblockPrompt    = "Отправьте ID пользователя для разблокировки."
	replyHooliganPrompt   = "Опишите ситуацию."
	replyIdeaPrompt       = "Напишите вашу идею."
	replyProblemPrompt    = "Опишите проблему."
	replyForwarded        = "Ваше сообщение отправлено Президенту и Администрации. Спасибо!"
	replyForwardFailed    = "Не удалось отправить сообщение. Сообщите администратору."
	replyChooseCategory   = "Выберите категорию с помощью кнопок ниже."
	replyChooseAction     = "Выберите действие с помощью кнопок."
	replySettings         = "Настройки: антиспам, фильтр мата, категории. (in-memory + автосохранение снапшота)"
	replyNoActivity       = "Пока нет активности."

	placeholderNoText         = "📎 Без текста"
	placeholderVideoNoCaption = "🎥 Без подписи"
	placeholderDocNoCaption   = "📄 Без подписи"
)

// UserKeyboard is the category menu shown to regular users.
func UserKeyboard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: ButtonReportHooligan}},
			{{Text: ButtonSuggestIdea}},
			{{Text: ButtonReportProblem}},
		},
		ResizeKeyboard: true,
	}
}

// AdminKeyboard is the action menu shown to the administrator.
func AdminKeyboard() *telegram.ReplyKeyboardMarkup {
	return &telegram.ReplyKeyboardMarkup{
		Keyboard: [][]telegram.KeyboardButton{
			{{Text: ButtonBroadcast}},
			{{Text: ButtonStats}},
			{{Text: ButtonSettings}},
			{{Text: ButtonBlock}},
			{{Text: ButtonUnblock}},
		},
		ResizeKeyboard: true,
	}
}
