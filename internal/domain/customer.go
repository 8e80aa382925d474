package domain

// CustomerRow — строка customer из таблицы pending-записей.
//
// Результат fetch-запроса приходит как слабо типизированный map
// (имя колонки -> значение: число, строка или nil). Валидация и
// приведение типов выполняются отдельным шагом в syncer (mapper),
// а не inline-кастами по месту использования.
//
// Строка живёт только в пределах одного sync run: читается, не мутируется.
type CustomerRow map[string]any

// CrmPayload — тело запроса к внешнему CRM-сервису.
//
// Контракт между sync-сервисом и CRM; намеренно не зависит от
// представления customer в БД. Поля без значения сериализуются
// как null (теги без omitempty).
type CrmPayload struct {
	// ID — идентификатор customer. Обязательное поле:
	// строка без валидного ID не попадает в payload (InvalidRecordError).
	ID int64 `json:"id"`

	// FirstName — имя. Nil, если колонка first_name была NULL.
	FirstName *string `json:"firstName"`

	// LastName — фамилия. Nil, если колонка last_name была NULL.
	LastName *string `json:"lastName"`

	// Email — адрес. Nil, если колонка email была NULL.
	Email *string `json:"email"`
}
