package commands

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/fertiplan/internal/domain/models"
	"github.com/mamadbah2/fertiplan/internal/reference"
	"github.com/mamadbah2/fertiplan/internal/service/recommendation"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// ErrUnsupportedCommand indicates we do not yet support the requested command.
var ErrUnsupportedCommand = errors.New("unsupported command")

const (
	chatSource   = "whatsapp"
	chatSoilType = "unspecified"

	recommendUsage = "Usage: /recommend <crop> <n> <p> <k> <ph> [organic matter %] [region]\n" +
		"Example: /recommend rice 20 10 15 6.5 1.2 north_india"
)

// Recommender produces recommendations for the chat channel.
type Recommender interface {
	Recommend(ctx context.Context, req recommendation.Request) (*models.RecommendationRecord, error)
	Catalog() *reference.Catalog
}

// RegionMemory remembers the last region each sender used.
type RegionMemory interface {
	LastRegion(sender string) models.RegionID
	RememberRegion(sender string, region models.RegionID)
}

// Dispatcher executes parsed commands and returns the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	recommender Recommender
	regions     RegionMemory
	logger      *zap.Logger
}

// NewService constructs a command dispatcher. regions may be nil.
func NewService(recommender Recommender, regions RegionMemory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		recommender: recommender,
		regions:     regions,
		logger:      logger,
	}
}

// HandleCommand runs the command and renders a plain-text reply.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Any("args", cmd.Args))

	switch cmd.Type {
	case models.CommandRecommend:
		req, err := s.buildRequest(cmd, sender)
		if err != nil {
			return "", err
		}

		record, err := s.recommender.Recommend(ctx, req)
		if err != nil {
			return "", err
		}

		if s.regions != nil && record.Region != "" {
			s.regions.RememberRegion(sender, record.Region)
		}

		return FormatRecommendation(s.recommender.Catalog(), record), nil
	case models.CommandCrops:
		return s.cropsMessage(), nil
	case models.CommandHelp:
		return HelpMessage(), nil
	default:
		return "", ErrUnsupportedCommand
	}
}

// buildRequest parses "<crop> <n> <p> <k> <ph> [om] [region]". A sixth token that is not a number is the region.
func (s *Service) buildRequest(cmd models.Command, sender string) (recommendation.Request, error) {
	if len(cmd.Args) < 5 || len(cmd.Args) > 7 {
		return recommendation.Request{}, ErrInvalidArguments
	}

	values := make([]float64, 4)
	for i, raw := range cmd.Args[1:5] {
		v, err := parseNonNegative(raw)
		if err != nil {
			return recommendation.Request{}, ErrInvalidArguments
		}
		values[i] = v
	}

	soil := &models.SoilSample{
		Type: chatSoilType,
		N:    values[0],
		P:    values[1],
		K:    values[2],
		PH:   values[3],
	}
	if soil.PH > 14 {
		return recommendation.Request{}, ErrInvalidArguments
	}

	var region models.RegionID
	rest := cmd.Args[5:]
	if len(rest) > 0 {
		if om, err := parseNonNegative(rest[0]); err == nil {
			soil.OrganicMatter = om
			rest = rest[1:]
		}
	}
	switch len(rest) {
	case 0:
		if s.regions != nil {
			region = s.regions.LastRegion(sender)
		}
	case 1:
		region = models.RegionID(rest[0])
	default:
		return recommendation.Request{}, ErrInvalidArguments
	}

	return recommendation.Request{
		Crop:   models.CropID(cmd.Args[0]),
		Region: region,
		Soil:   soil,
		Source: chatSource,
	}, nil
}

func (s *Service) cropsMessage() string {
	catalog := s.recommender.Catalog()

	var b strings.Builder
	b.WriteString("Supported crops:\n")
	for _, crop := range catalog.Crops() {
		fmt.Fprintf(&b, "- %s (%s)\n", crop.ID, crop.Name)
	}
	b.WriteString("Regions:")
	for _, region := range catalog.Regions() {
		fmt.Fprintf(&b, " %s", region.ID)
	}
	return b.String()
}

// HelpMessage lists the commands the bot understands.
func HelpMessage() string {
	return "Fertilizer advisor commands:\n" +
		"/recommend <crop> <n> <p> <k> <ph> [organic matter %] [region]\n" +
		"/crops - list crops and regions\n" +
		"/help - show this message\n" +
		"Soil N, P and K are in kg/ha."
}

// UsageMessage explains the /recommend arguments.
func UsageMessage() string {
	return recommendUsage
}

// FormatRecommendation renders a record as a WhatsApp-friendly summary.
func FormatRecommendation(catalog *reference.Catalog, record *models.RecommendationRecord) string {
	rec := record.Recommendation

	cropName := string(record.Crop)
	if catalog != nil {
		if crop, ok := catalog.Crop(record.Crop); ok {
			cropName = crop.Name
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Fertilizer plan for %s", cropName)
	if record.Region != "" && catalog != nil {
		if region, ok := catalog.Region(record.Region); ok {
			fmt.Fprintf(&b, " (%s)", region.Name)
		}
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Deficiency: N %.1f, P %.1f, K %.1f kg/ha\n", rec.Deficiency.N, rec.Deficiency.P, rec.Deficiency.K)

	if len(rec.FertilizerPlan) == 0 {
		b.WriteString("Your soil already meets the crop's needs. No fertilizer required.\n")
	} else {
		b.WriteString("\nFertilizers:\n")
		for _, entry := range rec.FertilizerPlan {
			fmt.Fprintf(&b, "- %s: %.1f kg/ha\n", entry.Name, entry.Quantity)
		}
	}

	if len(rec.ApplicationSchedule) > 0 {
		b.WriteString("\nSchedule:\n")
		for _, stage := range rec.ApplicationSchedule {
			fmt.Fprintf(&b, "%s\n", stage.StageName)
			for _, f := range stage.Fertilizers {
				fmt.Fprintf(&b, "  %s %.1f kg/ha, %s\n", f.Name, f.Quantity, f.Method)
			}
		}
	}

	if rec.CostBreakdown != nil {
		fmt.Fprintf(&b, "\nEstimated cost: Rs %.2f per hectare\n", rec.CostBreakdown.CostPerHectare)
	}

	if y := rec.YieldPrediction; y != nil {
		fmt.Fprintf(&b, "Expected yield gain: +%d%% over %s\n", y.PredictedImprovement, y.BaseYield)
	}

	if len(rec.EducationalTips) > 0 {
		b.WriteString("\nTips:\n")
		for _, tip := range rec.EducationalTips {
			fmt.Fprintf(&b, "- %s\n", tip)
		}
	}

	fmt.Fprintf(&b, "\nRef: %s", record.ID)
	return b.String()
}

func parseNonNegative(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidArguments
	}
	return v, nil
}
