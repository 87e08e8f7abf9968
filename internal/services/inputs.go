package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/i18n"
	"github.com/AhmadRaid/Premium-Umbrella-BackEnd/internal/models"
)

// CarInput carries the vehicle attributes of a request
type CarInput struct {
	CarModel        string         `json:"carModel"`
	CarManufacturer string         `json:"carManufacturer"`
	CarColor        string         `json:"carColor"`
	CarPlateNumber  string         `json:"carPlateNumber" validate:"omitempty,carplate"`
	CarSize         models.CarSize `json:"carSize" validate:"omitempty,oneof=small medium large"`
}

// Details converts the input into model attributes
func (c CarInput) Details() models.CarDetails {
	return models.CarDetails{
		CarModel:        strings.TrimSpace(c.CarModel),
		CarManufacturer: strings.TrimSpace(c.CarManufacturer),
		CarColor:        strings.TrimSpace(c.CarColor),
		CarPlateNumber:  strings.TrimSpace(c.CarPlateNumber),
		CarSize:         c.CarSize,
	}
}

// complete reports whether model, color, plate and size are all present
func (c CarInput) complete() bool {
	d := c.Details()
	return d.CarModel != "" && d.CarColor != "" && d.CarPlateNumber != "" && d.CarSize != ""
}

// GuaranteeInput is the guarantee requested for a service line
type GuaranteeInput struct {
	TypeGuarantee string    `json:"typeGuarantee"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	Terms         string    `json:"terms"`
	Notes         string    `json:"notes"`
}

func (g *GuaranteeInput) check() error {
	if g.StartDate.IsZero() || g.EndDate.IsZero() || !g.EndDate.After(g.StartDate) {
		return badRequest(i18n.GuaranteeInvalidDates)
	}
	return nil
}

// ServiceLineInput is one requested service. ServiceType selects the single
// attribute block that must be present.
type ServiceLineInput struct {
	ServiceType  models.ServiceType        `json:"serviceType" validate:"required"`
	DealDetails  string                    `json:"dealDetails"`
	ServicePrice decimal.Decimal           `json:"servicePrice"`
	ServiceDate  *time.Time                `json:"serviceDate"`
	Protection   *models.ProtectionDetails `json:"protection"`
	Insulation   *models.InsulationDetails `json:"insulation"`
	Polish       *models.PolishDetails     `json:"polish"`
	Addition     *models.AdditionDetails   `json:"addition"`
	Guarantee    *GuaranteeInput           `json:"guarantee"`
}

// Line converts the input into the shared line model
func (in ServiceLineInput) Line() models.ServiceLine {
	return models.ServiceLine{
		ServiceType: in.ServiceType,
		DealDetails: in.DealDetails,
		Price:       in.ServicePrice.Round(2),
		ServiceDate: in.ServiceDate,
		Protection:  in.Protection,
		Insulation:  in.Insulation,
		Polish:      in.Polish,
		Addition:    in.Addition,
	}
}

// check enforces the tagged union and the guarantee rules for the line at index
func (in ServiceLineInput) check(index int) error {
	if !models.ValidServiceType(in.ServiceType) {
		return badRequest(i18n.ServiceInvalidType, in.ServiceType)
	}
	line := in.Line()
	if line.Variant() == nil || line.SetCount() != 1 {
		return badRequest(i18n.ServiceVariantMismatch, index+1, in.ServiceType)
	}
	if in.ServicePrice.IsNegative() {
		return &Error{Kind: KindBadRequest, Key: i18n.ErrValidation, Detail: "servicePrice must be at least 0"}
	}
	if in.Guarantee != nil {
		if in.ServiceType == models.ServiceTypePolish {
			return badRequest(i18n.ServicePolishGuarantee)
		}
		if err := in.Guarantee.check(); err != nil {
			return err
		}
	}
	return nil
}

// OrderService builds the persisted order line with its guarantee
func (in ServiceLineInput) OrderService() models.OrderService {
	svc := models.OrderService{ServiceLine: in.Line()}
	if g := in.Guarantee; g != nil {
		svc.Guarantee = &models.Guarantee{
			TypeGuarantee: g.TypeGuarantee,
			StartDate:     g.StartDate.UTC(),
			EndDate:       g.EndDate.UTC(),
			Terms:         g.Terms,
			Notes:         g.Notes,
			Status:        models.GuaranteeInactive,
		}
	}
	return svc
}

// OfferService builds the persisted offer line with its proposed guarantee
func (in ServiceLineInput) OfferService() models.OfferService {
	svc := models.OfferService{ServiceLine: in.Line()}
	if g := in.Guarantee; g != nil {
		svc.Guarantee = &models.GuaranteeTerms{
			TypeGuarantee: g.TypeGuarantee,
			StartDate:     g.StartDate.UTC(),
			EndDate:       g.EndDate.UTC(),
			Terms:         g.Terms,
			Notes:         g.Notes,
		}
	}
	return svc
}

// checkLines validates every line, struct tags first
func checkLines(lines []ServiceLineInput) error {
	for i, line := range lines {
		if err := validate(line); err != nil {
			return err
		}
		if err := line.check(i); err != nil {
			return err
		}
	}
	return nil
}

// lineFromOffer maps a quoted line back into an order request line
func lineFromOffer(svc models.OfferService) ServiceLineInput {
	in := ServiceLineInput{
		ServiceType:  svc.ServiceType,
		DealDetails:  svc.DealDetails,
		ServicePrice: svc.Price,
		ServiceDate:  svc.ServiceDate,
		Protection:   svc.Protection,
		Insulation:   svc.Insulation,
		Polish:       svc.Polish,
		Addition:     svc.Addition,
	}
	if g := svc.Guarantee; g != nil {
		in.Guarantee = &GuaranteeInput{
			TypeGuarantee: g.TypeGuarantee,
			StartDate:     g.StartDate,
			EndDate:       g.EndDate,
			Terms:         g.Terms,
			Notes:         g.Notes,
		}
	}
	return in
}

// PageQuery is the limit/offset pair accepted by list operations
type PageQuery struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	NextPage    *int  `json:"nextPage"`
	Limit       int   `json:"limit"`
	Offset      int   `json:"offset"`
}

func paginate(total int64, limit, offset int) Pagination {
	p := Pagination{Total: total, Limit: limit, Offset: offset, CurrentPage: 1}
	if limit <= 0 {
		p.TotalPages = 1
		return p
	}
	p.CurrentPage = offset/limit + 1
	p.TotalPages = int((total + int64(limit) - 1) / int64(limit))
	if p.CurrentPage < p.TotalPages {
		next := p.CurrentPage + 1
		p.NextPage = &next
	}
	return p
}
