package models

// Play is a durable-bound record of one finalized play. Rows are written
// only by the game-over batch flush and read back by the CSV export.
type Play struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	GameSessionID     string  `gorm:"size:50;index;not null" json:"game_session_id"`
	RoundNumber       int     `gorm:"not null" json:"round_number"`
	SetNumber         int     `gorm:"not null" json:"set_number"`
	PlayNumberInRound int     `gorm:"not null" json:"play_number_in_round"`
	PlayerID          string  `gorm:"size:100" json:"player_id"`
	ValuePlayed       int     `gorm:"not null" json:"value_played"`
	TimeSincePrevious float64 `gorm:"not null" json:"time_since_previous"`
	WasMistake        bool    `gorm:"not null" json:"was_mistake"`
	ObserverInput     string  `gorm:"size:100" json:"observer_input"`
}
