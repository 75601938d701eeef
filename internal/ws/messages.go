package ws

import (
	"encoding/json"

	"github.com/ignatzorin/teambuilder-backend/internal/models"
	"github.com/ignatzorin/teambuilder-backend/internal/search"
)

// Типы входящих сообщений.
const (
	TypeFilters        = "filters"
	TypeSearch         = "search"
	TypePage           = "page"
	TypeToggle         = "toggle"
	TypeClearSelection = "clear_selection"
)

// Типы исходящих сообщений, кроме событий команд.
const (
	TypeSelection = "selection"
	TypeError     = "error"
)

// Inbound сообщение от браузера.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Outbound сообщение браузеру.
type Outbound struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type searchData struct {
	Term string `json:"term"`
}

type pageData struct {
	Page int `json:"page"`
}

type toggleData struct {
	ID string `json:"id"`
}

// PagePayload страница выдачи вместе с состоянием фильтров, для которого она получена.
type PagePayload struct {
	search.Page
	Filters          models.FilterState `json:"filters"`
	HasActiveFilters bool               `json:"has_active_filters"`
}

// SelectionPayload текущий выбор сессии.
type SelectionPayload struct {
	IDs   []string `json:"ids"`
	Count int      `json:"count"`
	Max   int      `json:"max"`
}

// ErrorPayload описание ошибки обработки сообщения.
type ErrorPayload struct {
	Message string `json:"message"`
}
