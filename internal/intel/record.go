package intel

// Record - знание одного игрока об одной сущности.
//
// Запись принадлежит сущности и живёт, пока жива сущность. При политике
// PolicyRevertible покрытие может упасть до floor, но сама запись
// остаётся на месте для повторного поиска.
type Record struct {
	coverage CoverageLevel
	floor    CoverageLevel
	policy   Policy

	// Число активных контактов по классам сенсоров. Один игрок может
	// держать несколько контактов одного класса (несколько кораблей).
	contacts [sensorClassCount]uint16
}

// RecordState - сохраняемая часть записи.
// Счётчики контактов относятся к текущей сессии и не сохраняются.
type RecordState struct {
	Policy   Policy        `json:"policy"`
	Coverage CoverageLevel `json:"coverage"`
	Floor    CoverageLevel `json:"floor"`
}

// NewRecord создает запись с начальным покрытием и нижней границей.
// Покрытие не может быть ниже floor.
func NewRecord(policy Policy, initial, floor CoverageLevel) *Record {
	return &Record{
		coverage: Max(initial, floor),
		floor:    floor,
		policy:   policy,
	}
}

// RestoreRecord восстанавливает запись из сохранения.
func RestoreRecord(state RecordState) *Record {
	return NewRecord(state.Policy, state.Coverage, state.Floor)
}

// State возвращает сохраняемую часть записи.
func (r *Record) State() RecordState {
	return RecordState{Policy: r.policy, Coverage: r.coverage, Floor: r.floor}
}

func (r *Record) Coverage() CoverageLevel { return r.coverage }
func (r *Record) Floor() CoverageLevel    { return r.floor }
func (r *Record) Policy() Policy          { return r.policy }

// Contacts возвращает число активных контактов класса.
func (r *Record) Contacts(class SensorClass) int {
	if !class.Valid() {
		return 0
	}
	return int(r.contacts[class])
}

// HasContact сообщает, держит ли игрок хотя бы один контакт.
func (r *Record) HasContact() bool {
	for _, class := range SensorClasses {
		if r.contacts[class] > 0 {
			return true
		}
	}
	return false
}

// Apply применяет изменение контакта и возвращает true, если покрытие изменилось.
//
// Попытка понизить покрытие при PolicyMonotonic - это не ошибка, а
// политика: событие молча игнорируется.
func (r *Record) Apply(class SensorClass, state ContactState, ceilings Ceilings) bool {
	if !class.Valid() {
		return false
	}

	switch state {
	case ContactGained:
		return r.gain(class, ceilings)
	case ContactLost:
		return r.lose(class, ceilings)
	}
	return false
}

// Raise поднимает покрытие напрямую (без контакта): разведданные от союзника,
// восстановление из сохранения. Понижать уровень нельзя ни при какой политике.
func (r *Record) Raise(level CoverageLevel) bool {
	return r.set(Max(r.coverage, level))
}

func (r *Record) gain(class SensorClass, ceilings Ceilings) bool {
	if r.contacts[class] < ^uint16(0) {
		r.contacts[class]++
	}
	return r.set(Max(r.coverage, ceilings.Of(class)))
}

func (r *Record) lose(class SensorClass, ceilings Ceilings) bool {
	if r.contacts[class] > 0 {
		r.contacts[class]--
	}

	if r.policy != PolicyRevertible {
		return false
	}
	return r.set(r.supported(ceilings))
}

// Reconcile приводит покрытие PolicyRevertible к уровню, который
// обеспечивают текущие контакты (или floor). Нужен там, где контакты
// меняются без события Lost: снятие нижней границы при смене владельца,
// первый обзор после загрузки сохранения. Для PolicyMonotonic ничего не делает.
func (r *Record) Reconcile(ceilings Ceilings) bool {
	if r.policy != PolicyRevertible {
		return false
	}
	return r.set(r.supported(ceilings))
}

// supported - наибольший уровень, который обеспечивают оставшиеся контакты.
func (r *Record) supported(ceilings Ceilings) CoverageLevel {
	level := r.floor
	for _, class := range SensorClasses {
		if r.contacts[class] > 0 {
			level = Max(level, ceilings.Of(class))
		}
	}
	return level
}

func (r *Record) set(level CoverageLevel) bool {
	if r.policy == PolicyMonotonic && level < r.coverage {
		return false
	}
	level = Max(level, r.floor)
	if level == r.coverage {
		return false
	}
	r.coverage = level
	return true
}

// SetFloor меняет нижнюю границу (смена владельца). Если покрытие ниже
// новой границы, оно поднимается; понижение границы само покрытие не меняет.
func (r *Record) SetFloor(level CoverageLevel) bool {
	r.floor = level
	if r.coverage >= level {
		return false
	}
	r.coverage = level
	return true
}
