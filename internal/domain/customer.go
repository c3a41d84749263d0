package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Customer представляет собой модель клиента
type Customer struct {
	ID               uuid.UUID `json:"id"`
	LastName         string    `json:"last_name"`
	FirstName        string    `json:"first_name"`
	MiddleName       string    `json:"middle_name,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	RegistrationDate Date      `json:"registration_date"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// FullName возвращает полное имя клиента: фамилия, имя и отчество (если есть)
func (c Customer) FullName() string {
	parts := []string{c.LastName, c.FirstName}
	if c.MiddleName != "" {
		parts = append(parts, c.MiddleName)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// CustomerRequest представляет запрос на создание/обновление клиента.
// Дата регистрации передается строкой ГГГГ-ММ-ДД; пустая строка означает "сегодня".
type CustomerRequest struct {
	LastName         string `json:"last_name"`
	FirstName        string `json:"first_name"`
	MiddleName       string `json:"middle_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	RegistrationDate string `json:"registration_date"`
	Notes            string `json:"notes"`
}

// CustomerSummary проекция клиента для автодополнения в UI
type CustomerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

// Summary строит проекцию для автодополнения
func (c Customer) Summary() CustomerSummary {
	return CustomerSummary{
		ID:    c.ID,
		Name:  c.FullName(),
		Email: c.Email,
		Phone: c.Phone,
	}
}

// MatchesQuery проверяет, содержит ли хотя бы одно из полей поиска
// (фамилия, имя, телефон, email) подстроку query без учета регистра.
func (c Customer) MatchesQuery(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, field := range []string{c.LastName, c.FirstName, c.Phone, c.Email} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
