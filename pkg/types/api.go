package types

// PlanRequest is the body of POST /api/plan_goal.
type PlanRequest struct {
	// Goal kind: gold or property. Defaults to gold.
	// example: gold
	GoalType string `json:"goal_type,omitempty" example:"gold"`
	// Monthly amount the user can put aside, in INR.
	// example: 25000
	MonthlyIncome float64 `json:"monthly_income" example:"25000"`
	// Savings already set aside for the goal, in INR.
	// example: 100000
	ExistingSavings float64 `json:"existing_savings,omitempty" example:"100000"`
	// Horizon in years; ignored when horizon_months is set.
	// example: 3
	DurationYears float64 `json:"duration_years,omitempty" example:"3"`
	// Horizon in months.
	// example: 36
	HorizonMonths int `json:"horizon_months,omitempty" example:"36"`
	// Target amount in INR. Takes precedence over grams and sqft.
	// example: 0
	TargetValue float64 `json:"target_value,omitempty" example:"0"`
	// Gold target in grams.
	// example: 50
	TargetGrams float64 `json:"target_grams,omitempty" example:"50"`
	// Property target area in square feet.
	// example: 0
	TargetSqft float64 `json:"target_sqft,omitempty" example:"0"`
	// Property locality, used with target_sqft.
	// example: Andheri
	Locality string `json:"Locality,omitempty" example:"Andheri"`
	// Property bedrooms, used with target_sqft.
	// example: 2
	BHK float64 `json:"BHK,omitempty" example:"2"`
	// Optional emergency scenario.
	Emergency *Emergency `json:"emergency,omitempty"`
}

// Emergency describes a one-off expense and a temporary income cut.
type Emergency struct {
	// One-time expense in INR added to the shortfall.
	// example: 50000
	OneTime float64 `json:"one_time,omitempty" example:"50000"`
	// Percentage reduction of monthly capacity during recovery.
	// example: 20
	IncomeReductionPct float64 `json:"income_reduction_pct,omitempty" example:"20"`
	// Months the reduction lasts, from the start of the plan.
	// example: 6
	RecoveryMonths int `json:"recovery_months,omitempty" example:"6"`
}

// TimelineEntry is one month of a savings plan.
type TimelineEntry struct {
	// example: 2026-11-01
	Date string `json:"date" example:"2026-11-01"`
	// example: 21500.5
	MonthlyAmountINR float64 `json:"monthly_amount_inr" example:"21500.5"`
	// example: 121500.5
	CumulativeSaved float64 `json:"cumulative_saved" example:"121500.5"`
	// example: 12.4
	ProgressPercent float64 `json:"progress_percent" example:"12.4"`
	// Gold only.
	// example: 6120.75
	PredictedPricePerGram float64 `json:"predicted_price_per_gram,omitempty" example:"6120.75"`
	// Gold only.
	// example: 3.51
	GramsBought float64 `json:"grams_bought,omitempty" example:"3.51"`
	// Gold only.
	// example: 19.85
	CumulativeGrams float64 `json:"cumulative_grams,omitempty" example:"19.85"`
}

// Plan is the response of POST /api/plan_goal.
type Plan struct {
	// example: 3f1c2b9e-8a7d-4c55-9d0e-2b6f1a4e7c10
	PlanID string `json:"plan_id" example:"3f1c2b9e-8a7d-4c55-9d0e-2b6f1a4e7c10"`
	// example: gold
	GoalType string `json:"goal_type" example:"gold"`
	// Forecasting method that produced the prices.
	// example: trend-seasonal
	ForecastUsed string `json:"forecast_used" example:"trend-seasonal"`
	// Version of the model set used.
	// example: 9a0b1c2d3e4f
	ModelVersion string `json:"model_version" example:"9a0b1c2d3e4f"`
	// example: 36
	HorizonMonths int `json:"horizon_months" example:"36"`
	// example: 330000
	TargetValueINR float64 `json:"target_value_inr" example:"330000"`
	// example: 100000
	ExistingSavings float64 `json:"existing_savings" example:"100000"`
	// example: 6388.89
	RequiredMonthlySaving float64 `json:"required_monthly_saving" example:"6388.89"`
	// Whether the required saving fits the monthly capacity.
	// example: true
	Feasible bool `json:"feasible" example:"true"`
	// Property only: projected relative price change over the horizon, percent.
	// example: 14.2
	ProjectedGrowthPct *float64 `json:"projected_growth_pct,omitempty" example:"14.2"`
	// Human-readable notes on affordability and forecast provenance.
	Confidence []string `json:"confidence"`
	// Exactly horizon_months entries.
	Timeline []TimelineEntry `json:"timeline"`
}

// PropertyRequest is the body of POST /api/property_predict.
type PropertyRequest struct {
	// example: 1200
	Area float64 `json:"area" example:"1200"`
	// example: 3
	Bedrooms float64 `json:"bedrooms" example:"3"`
	// example: Andheri
	Location string `json:"location" example:"Andheri"`
}

// PropertyEstimate is the response of POST /api/property_predict.
type PropertyEstimate struct {
	// example: 5000000
	PriceEstimate float64 `json:"price_estimate" example:"5000000"`
	// example: mid-tier
	Tier string `json:"tier" example:"mid-tier"`
	// example: 9a0b1c2d3e4f
	ModelVersion string `json:"model_version,omitempty" example:"9a0b1c2d3e4f"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	// example: How should I split my savings between gold and an SIP?
	Query string `json:"query" example:"How should I split my savings between gold and an SIP?"`
	// Free-form context, typically the current plan.
	Context map[string]any `json:"context,omitempty"`
}

// ChatResponse carries the assistant's answer or an advisory.
type ChatResponse struct {
	// example: Consider putting 60% into a gold SIP...
	Answer string `json:"answer" example:"Consider putting 60% into a gold SIP..."`
}

// TrainRequest is the optional body of POST /api/train_all.
type TrainRequest struct {
	// Rows of property data to use; 0 means the default.
	// example: 50000
	SampleSize int `json:"sample_size,omitempty" example:"50000"`
}

// TrainResponse reports training metrics.
type TrainResponse struct {
	// example: 84.21
	GoldMAE float64 `json:"gold_mae" example:"84.21"`
	// example: 412000.5
	PropertyMAE float64 `json:"property_mae" example:"412000.5"`
	// example: 0.91
	PropertyR2 float64 `json:"property_r2" example:"0.91"`
	// example: 0.88
	ClassifierAccuracy float64 `json:"classifier_accuracy" example:"0.88"`
	// example: 50000
	RowsUsed int `json:"rows_used" example:"50000"`
	// example: 9a0b1c2d3e4f
	ModelVersion string `json:"model_version,omitempty" example:"9a0b1c2d3e4f"`
	Artifacts []string `json:"artifacts"`
	// Set when artifacts were written but the reload failed.
	ReloadError string `json:"reload_error,omitempty"`
}

// TrainErrorResponse is returned when artifacts were written but could not
// be published. It carries the metrics of the completed fit.
type TrainErrorResponse struct {
	TrainResponse
	// example: artifacts written but reload failed: corrupt artifact
	Error string `json:"error" example:"artifacts written but reload failed: corrupt artifact"`
	// example: 500
	Code int `json:"code" example:"500"`
}

// ReloadRequest is the optional body of POST /api/models/reload.
type ReloadRequest struct {
	// Publish a set even when some roles fail to load.
	// example: false
	AcceptPartial bool `json:"accept_partial,omitempty" example:"false"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
