package types

import (
	"fmt"
	"strconv"
	"strings"
)

// PlayerID - идентификатор игрока-наблюдателя.
//
// Нулевое значение зарезервировано под NoPlayer: им помечаются ничейные
// сущности. Наблюдателем NoPlayer быть не может.
type PlayerID uint8

// NoPlayer - отсутствие владельца.
const NoPlayer PlayerID = 0

// MaxPlayers - верхняя граница идентификатора игрока.
const MaxPlayers = 32

// Valid проверяет, что идентификатор попадает в допустимый диапазон.
// Принадлежность к конкретной партии проверяет domain.Roster.
func (p PlayerID) Valid() bool {
	return p != NoPlayer && p <= MaxPlayers
}

func (p PlayerID) String() string {
	if p == NoPlayer {
		return "nobody"
	}
	return "P" + strconv.Itoa(int(p))
}

// ParsePlayerID принимает "3" или "P3".
func ParsePlayerID(s string) (PlayerID, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "P")
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return NoPlayer, fmt.Errorf("invalid player id %q: %w", s, err)
	}
	p := PlayerID(v)
	if !p.Valid() {
		return NoPlayer, fmt.Errorf("player id %d out of range", v)
	}
	return p, nil
}
