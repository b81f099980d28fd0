package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"propkpi/server/internal/kpi"
	"propkpi/server/internal/models"
	"propkpi/server/internal/report"
)

// RatesPercent is the value of the "rates" query parameter that marks rate
// fields as percent entries (12.0 meaning 12%).
const RatesPercent = "percent"

var (
	errEmptyBody = errors.New("request body is empty")
	errNonFinite = errors.New("inputs produce values outside the representable range")
)

type Handler struct {
	logger *logrus.Logger
}

// KpiResponse is a computed KPI record together with its display helpers.
type KpiResponse struct {
	Inputs       models.PropertyInputs `json:"inputs"`
	KPIs         models.KpiResult      `json:"kpis"`
	DSCRStatus   kpi.DSCRStatus        `json:"dscr_status"`
	DSCRMessage  string                `json:"dscr_message"`
	CapRateGauge float64               `json:"cap_rate_gauge"`
	Table        []report.Row          `json:"table"`
}

type CompareRequest struct {
	A models.PropertyInputs `json:"a"`
	B models.PropertyInputs `json:"b"`
}

type CompareResponse struct {
	A          KpiResponse             `json:"a"`
	B          KpiResponse             `json:"b"`
	Comparison models.ComparisonResult `json:"comparison"`
}

type DSCRStatusResponse struct {
	DSCR    float64        `json:"dscr"`
	Status  kpi.DSCRStatus `json:"status"`
	Message string         `json:"message"`
}

func NewHandler(logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{logger: logger}
}

func (h *Handler) GetDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, kpi.DefaultInputs())
}

func (h *Handler) ComputeKPIs(c *gin.Context) {
	var in models.PropertyInputs
	if err := decodeBody(c, &in); err != nil {
		h.logger.WithError(err).Error("Failed to parse property inputs")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	in = normalizeRates(c, in)
	if err := binding.Validator.ValidateStruct(&in); err != nil {
		h.logger.WithError(err).Warn("Rejected property inputs")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := buildKpiResponse(in)
	if err != nil {
		h.logger.WithError(err).WithField("name", in.Name).Warn("Rejected property inputs")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"name":        in.Name,
		"noi":         resp.KPIs.NetOperatingIncome,
		"dscr_status": resp.DSCRStatus,
	}).Debug("Computed KPIs")

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) CompareProperties(c *gin.Context) {
	var req CompareRequest
	if err := decodeBody(c, &req); err != nil {
		h.logger.WithError(err).Error("Failed to parse compare request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.A = normalizeRates(c, req.A)
	req.B = normalizeRates(c, req.B)
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		h.logger.WithError(err).Warn("Rejected compare request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := buildCompareResponse(req)
	if err != nil {
		h.logger.WithError(err).Warn("Rejected compare request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"name_a": req.A.Name,
		"name_b": req.B.Name,
	}).Debug("Compared properties")

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetDSCRStatus(c *gin.Context) {
	valueStr := c.Query("value")
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		h.logger.WithError(err).WithField("value", valueStr).Warn("Invalid DSCR value")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'value' must be a number"})
		return
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		h.logger.WithField("value", valueStr).Warn("Non-finite DSCR value")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'value' must be a finite number"})
		return
	}

	status := kpi.ClassifyDSCR(value)
	c.JSON(http.StatusOK, DSCRStatusResponse{
		DSCR:    value,
		Status:  status,
		Message: report.DSCRMessage(status),
	})
}

// buildKpiResponse returns errNonFinite when any KPI overflows to NaN or Inf.
func buildKpiResponse(in models.PropertyInputs) (KpiResponse, error) {
	result := kpi.Compute(in)
	if !result.Finite() {
		return KpiResponse{}, errNonFinite
	}
	status := kpi.ClassifyDSCR(result.DSCR)

	return KpiResponse{
		Inputs:       in,
		KPIs:         result,
		DSCRStatus:   status,
		DSCRMessage:  report.DSCRMessage(status),
		CapRateGauge: kpi.CapRateGauge(result.CapRate),
		Table:        report.KPITable(result),
	}, nil
}

func buildCompareResponse(req CompareRequest) (CompareResponse, error) {
	a, err := buildKpiResponse(req.A)
	if err != nil {
		return CompareResponse{}, fmt.Errorf("property a: %w", err)
	}
	b, err := buildKpiResponse(req.B)
	if err != nil {
		return CompareResponse{}, fmt.Errorf("property b: %w", err)
	}

	comparison := kpi.Compare(a.KPIs, b.KPIs)
	if !comparison.Finite() {
		return CompareResponse{}, fmt.Errorf("comparison: %w", errNonFinite)
	}

	return CompareResponse{
		A:          a,
		B:          b,
		Comparison: comparison,
	}, nil
}

// decodeBody unmarshals the JSON body without running validation, so rate
// fields can be converted before they are checked.
func decodeBody(c *gin.Context, obj any) error {
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(body, obj)
}

func normalizeRates(c *gin.Context, in models.PropertyInputs) models.PropertyInputs {
	if c.Query("rates") == RatesPercent {
		return kpi.InputsFromPercent(in)
	}
	return in
}
