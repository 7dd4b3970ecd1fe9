package user

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"matka/database"
	"matka/helpers"
	"matka/models"
	"matka/services"
)

var validate = validator.New()

const eps = 1e-6

type PlaceBetRequest struct {
	MarketID uint    `json:"market_id" validate:"required"`
	BetType  string  `json:"bet_type" validate:"required,oneof=jodi haruf crossing"`
	Number   string  `json:"number" validate:"required,max=16"`
	Position string  `json:"position" validate:"omitempty,max=12"`
	JodaCut  bool    `json:"joda_cut"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
}

// Intake rejections. Not-open and not-accepting stay two separate
// paths because callers branch on conflict vs forbidden.
var (
	errMarketNotFound      = errors.New("MARKET_NOT_FOUND")
	errMarketNotStarted    = errors.New("MARKET_NOT_STARTED")
	errMarketClosedNow     = errors.New("MARKET_CLOSED")
	errMarketInactive      = errors.New("MARKET_INACTIVE")
	errMarketNotAccepting  = errors.New("MARKET_NOT_ACCEPTING_BETS")
	errStakeOutOfRange     = errors.New("STAKE_OUT_OF_RANGE")
	errInvalidBetNumber    = errors.New("INVALID_BET_NUMBER")
	errStakeTooSmall       = errors.New("STAKE_TOO_SMALL_FOR_COMBINATIONS")
	errInsufficientBalance = errors.New("INSUFFICIENT_BALANCE")
)

// PlaceBet validates the market window and creates the bet record(s),
// the balance debit and the ledger row as one transaction: either all
// of them land or none do.
func PlaceBet(c *fiber.Ctx) error {
	var req PlaceBetRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := validate.Struct(&req); err != nil {
		return helpers.JSONError(c, "VALIDATION_FAILED")
	}

	authUser, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized, "INVALID_USER_SESSION")
	}

	now := time.Now()
	var (
		created   []models.Bet
		charged   float64
		potential float64
		balance   float64
	)

	txErr := database.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, authUser.ID).Error; err != nil {
			return err
		}

		var market models.Market
		if err := tx.First(&market, req.MarketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errMarketNotFound
			}
			return err
		}

		if !market.IsActive {
			return errMarketInactive
		}
		switch services.PhaseAt(&market, now) {
		case models.MarketOpen:
		case models.MarketWaiting:
			return errMarketNotStarted
		default:
			return errMarketClosedNow
		}
		if !services.AcceptingBets(&market, now) {
			return errMarketNotAccepting
		}

		if req.Amount < market.MinBet-eps || req.Amount > market.MaxBet+eps {
			return errStakeOutOfRange
		}

		refID := uuid.New().String()
		var err error
		created, charged, err = buildBets(&user, &market, &req, refID)
		if err != nil {
			return err
		}

		before := user.TotalBalance()
		if !user.Debit(charged) {
			return errInsufficientBalance
		}
		if err := tx.Model(&user).Updates(map[string]any{
			"deposit_balance":    user.DepositBalance,
			"bonus_balance":      user.BonusBalance,
			"commission_balance": user.CommissionBalance,
			"winning_balance":    user.WinningBalance,
		}).Error; err != nil {
			return err
		}

		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		betID, marketID := created[0].ID, market.ID
		if err := tx.Create(&models.UserTransaction{
			UserID:        user.ID,
			UserCode:      user.UserCode,
			TrxType:       models.TrxBet,
			Amount:        charged,
			BalanceBefore: before,
			BalanceAfter:  user.TotalBalance(),
			Note:          "Bet on " + market.Name,
			RefID:         refID,
			BetID:         &betID,
			MarketID:      &marketID,
		}).Error; err != nil {
			return err
		}

		for i := range created {
			potential = helpers.FormatFloat(potential+created[i].PotentialWin, 2)
		}
		balance = user.TotalBalance()
		return nil
	})

	if txErr != nil {
		switch {
		case errors.Is(txErr, errMarketNotFound):
			return helpers.JSONErrorStatus(c, fiber.StatusNotFound, txErr.Error())
		case errors.Is(txErr, errMarketNotStarted),
			errors.Is(txErr, errMarketClosedNow),
			errors.Is(txErr, errMarketInactive):
			return helpers.JSONErrorStatus(c, fiber.StatusConflict, txErr.Error())
		case errors.Is(txErr, errMarketNotAccepting):
			return helpers.JSONErrorStatus(c, fiber.StatusForbidden, txErr.Error())
		case errors.Is(txErr, errInsufficientBalance):
			return helpers.JSONErrorStatus(c, fiber.StatusPaymentRequired, txErr.Error())
		case errors.Is(txErr, errStakeOutOfRange),
			errors.Is(txErr, errInvalidBetNumber),
			errors.Is(txErr, errStakeTooSmall):
			return helpers.JSONError(c, txErr.Error())
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError, "BET_PLACEMENT_FAILED")
	}

	return helpers.JSONSuccess(c, "Bet placed successfully", fiber.Map{
		"bets":              created,
		"charged":           charged,
		"potential_winning": potential,
		"balance":           balance,
	})
}

// buildBets materializes the bet rows for one placement. Crossing
// stakes are the user's total intended amount, split per combination
// and rounded down so the charge never exceeds the request.
func buildBets(user *models.User, market *models.Market, req *PlaceBetRequest, refID string) ([]models.Bet, float64, error) {
	base := models.Bet{
		UserID:     user.ID,
		UserCode:   user.UserCode,
		MarketID:   market.ID,
		MarketName: market.Name,
		Status:     models.BetPending,
		RefID:      refID,
	}

	switch req.BetType {
	case models.BetTypeJodi:
		if len(req.Number) != 2 || !helpers.IsDigits(req.Number) {
			return nil, 0, errInvalidBetNumber
		}
		bet := base
		bet.BetType = models.BetTypeJodi
		bet.Number = req.Number
		bet.Amount = req.Amount
		bet.PotentialWin = helpers.FormatFloat(req.Amount*market.JodiMultiplier, 2)
		return []models.Bet{bet}, req.Amount, nil

	case models.BetTypeHaruf:
		pos, posOK := helpers.NormalizePosition(req.Position)
		digit := req.Number
		if !posOK {
			if p, d, ok := helpers.ParseHarufToken(req.Number); ok {
				pos, digit = p, d
			} else {
				pos = models.PositionLeading
			}
		} else if p, d, ok := helpers.ParseHarufToken(req.Number); ok && p == pos {
			digit = d
		}
		if len(digit) != 1 || !helpers.IsDigits(digit) {
			return nil, 0, errInvalidBetNumber
		}
		aux, _ := json.Marshal(models.HarufAux{RawNumber: req.Number, RawPosition: req.Position})
		bet := base
		bet.BetType = models.BetTypeHaruf
		bet.Number = digit
		bet.Position = pos
		bet.Amount = req.Amount
		bet.PotentialWin = helpers.FormatFloat(req.Amount*market.HarufMultiplier, 2)
		bet.AuxData = aux
		return []models.Bet{bet}, req.Amount, nil

	default: // crossing
		combos := helpers.CrossingCombinations(req.Number, req.JodaCut)
		if len(combos) == 0 {
			return nil, 0, errInvalidBetNumber
		}
		perCombo := helpers.SplitStake(req.Amount, len(combos))
		if perCombo <= 0 {
			return nil, 0, errStakeTooSmall
		}
		charged := helpers.ChargedTotal(perCombo, len(combos))

		aux, _ := json.Marshal(models.CrossingAux{
			BaseDigits:     req.Number,
			Combinations:   combos,
			JodaCut:        req.JodaCut,
			ComboCount:     len(combos),
			PerComboStake:  perCombo,
			RequestedStake: req.Amount,
			ChargedStake:   charged,
		})
		group := uuid.New().String()

		bets := make([]models.Bet, 0, len(combos))
		for _, combo := range combos {
			bet := base
			bet.BetType = models.BetTypeCrossing
			bet.Number = combo
			bet.Amount = perCombo
			bet.PotentialWin = helpers.FormatFloat(perCombo*market.CrossingMultiplier, 2)
			bet.CrossingGroup = group
			bet.AuxData = aux
			bets = append(bets, bet)
		}
		return bets, charged, nil
	}
}
