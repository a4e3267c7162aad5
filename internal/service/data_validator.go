package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/yourusername/football-edge/internal/models"
)

// DataValidator checks fetched games against the model constraints
type DataValidator struct {
	validate *validator.Validate
}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidator {
	return &DataValidator{validate: validator.New()}
}

// ValidateGame checks required ids, distinct teams and a known result
func (v *DataValidator) ValidateGame(g models.Game) error {
	if err := v.validate.Struct(g); err != nil {
		return fmt.Errorf("game %d: %w", g.GameID, err)
	}
	if !g.Result.Valid() {
		return fmt.Errorf("game %d: unknown result %d", g.GameID, int(g.Result))
	}
	return nil
}

// ValidateEvaluationGame also requires all three odds above 1
func (v *DataValidator) ValidateEvaluationGame(g models.EvaluationGame) error {
	if err := v.ValidateGame(g.Game); err != nil {
		return err
	}
	if err := v.validate.Struct(g.Odds); err != nil {
		return fmt.Errorf("game %d odds: %w", g.GameID, err)
	}
	return nil
}

// FilterGames splits games into valid ones and the errors of the rest
func (v *DataValidator) FilterGames(games []models.Game) ([]models.Game, []error) {
	valid := make([]models.Game, 0, len(games))
	var errs []error
	for _, g := range games {
		if err := v.ValidateGame(g); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, g)
	}
	return valid, errs
}

// FilterEvaluationGames splits evaluation games into valid ones and the errors of the rest
func (v *DataValidator) FilterEvaluationGames(games []models.EvaluationGame) ([]models.EvaluationGame, []error) {
	valid := make([]models.EvaluationGame, 0, len(games))
	var errs []error
	for _, g := range games {
		if err := v.ValidateEvaluationGame(g); err != nil {
			errs = append(errs, err)
			continue
		}
		valid = append(valid, g)
	}
	return valid, errs
}
