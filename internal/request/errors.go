package request

import (
	"errors"
	"fmt"

	"github.com/TechGeniusAcademy/melochy/internal/models"
)

var (
	ErrNotFound  = errors.New("заявка не найдена")
	ErrForbidden = errors.New("доступ запрещен")
)

// InvalidStateError - попытка изменить заявку вне статуса pending.
// Текущий статус включается в сообщение для пользователя.
type InvalidStateError struct {
	Status models.RequestStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("нельзя редактировать заявку в статусе %q", e.Status)
}

// ProductNotFoundError - позиция ссылается на товар, которого нет в каталоге
type ProductNotFoundError struct {
	ProductID uint
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("товар #%d не найден", e.ProductID)
}

// ValidationError - некорректные входные данные (битая ссылка на товар и т.п.)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
