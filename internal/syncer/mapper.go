package syncer

import (
	"fmt"
	"strconv"

	"github.com/shaiso/Syncline/internal/domain"
)

// Чистый маппинг строки customer в CRM payload.
//
// Имена колонок соответствуют SELECT-клаузе fetch-запроса
// (id, first_name, last_name, email). Обе функции детерминированы
// и не имеют скрытого состояния: повторный вызов над той же строкой
// даёт структурно равный результат.

// CustomerID извлекает идентификатор customer из строки.
//
// Вызывается до MapRow, чтобы item context получил customer_id как
// можно раньше: лог об ошибке маппинга остальных полей всё равно
// будет атрибутирован конкретному customer.
func CustomerID(row domain.CustomerRow) (int64, error) {
	return toID("id", row["id"])
}

// MapRow строит CRM payload из строки customer.
//
// Коэрция типов:
//   - id: числовые типы берутся как есть, строка парсится как integer;
//     nil, другой тип или непарсимая строка -> InvalidRecordError
//   - first_name/last_name/email: любое присутствующее значение
//     приводится к строке, nil остаётся nil
func MapRow(row domain.CustomerRow) (*domain.CrmPayload, error) {
	id, err := toID("id", row["id"])
	if err != nil {
		return nil, err
	}

	return &domain.CrmPayload{
		ID:        id,
		FirstName: toNullableString(row["first_name"]),
		LastName:  toNullableString(row["last_name"]),
		Email:     toNullableString(row["email"]),
	}, nil
}

// toID приводит сырое значение колонки к int64.
func toID(column string, value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, &InvalidRecordError{Column: column, Value: v}
		}
		return id, nil
	default:
		return 0, &InvalidRecordError{Column: column, Value: value}
	}
}

// toNullableString приводит сырое значение к *string, сохраняя NULL.
func toNullableString(value any) *string {
	if value == nil {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	return &s
}
