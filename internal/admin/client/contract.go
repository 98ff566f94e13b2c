package client

// TokenSource отдает bearer токен для запросов к API.
// Пустой токен не является ошибкой: заголовок просто не ставится,
// сервер сам отклонит неаутентифицированный вызов.
type TokenSource interface {
	Token() string
}

// StaticToken источник с фиксированным токеном
type StaticToken string

// Token возвращает токен
func (t StaticToken) Token() string { return string(t) }

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
