package service

import (
	"errors"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	ChooseCell(game *entity.Game) (int, error)
}

type botService struct {
	rng *rand.Rand
}

// NewBotService returns a bot that picks uniformly among the open cells.
func NewBotService(rng *rand.Rand) BotService {
	return &botService{rng: rng}
}

func (that *botService) ChooseCell(game *entity.Game) (int, error) {
	availableCells := game.OpenCells()

	if len(availableCells) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return availableCells[that.rng.IntN(len(availableCells))], nil
}
