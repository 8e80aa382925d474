package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Syncline/internal/domain"
)

// CustomerRepo — репозиторий pending-записей customers.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepo создаёт новый CustomerRepo.
func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// ListUnsynced возвращает все ещё не синхронизированные customers
// в порядке id. Пустой batch — это []domain.CustomerRow длины 0, не ошибка.
//
// Строки возвращаются как map колонка -> значение: контракт fetch-шага —
// слабо типизированная последовательность field mappings, валидация
// которой выполняется mapper'ом в syncer, а не репозиторием.
func (r *CustomerRepo) ListUnsynced(ctx context.Context) ([]domain.CustomerRow, error) {
	query := `
		SELECT id, first_name, last_name, email
		FROM customers
		WHERE synced = false
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query unsynced customers: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()

	var result []domain.CustomerRow
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read customer row: %w", err)
		}

		row := make(domain.CustomerRow, len(fields))
		for i := range fields {
			row[fields[i].Name] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate unsynced customers: %w", err)
	}

	return result, nil
}

// MarkSynced помечает customer как синхронизированного.
//
// Вызывается после подтверждённой доставки (2xx от CRM). Best-effort:
// если апдейт не прошёл, строка останется unsynced и будет отправлена
// повторно следующим run'ом — CRM идемпотентен по id, дубль безопасен.
func (r *CustomerRepo) MarkSynced(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE customers SET synced = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark customer %d synced: %w", id, err)
	}
	return nil
}
