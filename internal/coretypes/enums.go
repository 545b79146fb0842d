// Package coretypes holds the core data model shared by every component of
// the decision core: Conversation Context, Intent Record, Sub-Task,
// Execution Plan, Expert Result, Verification Result and Response Chunk.
package coretypes

// PrimaryIntent is the closed set of intent labels the extractor may produce.
type PrimaryIntent string

const (
	IntentGreeting            PrimaryIntent = "greeting"
	IntentFarewell            PrimaryIntent = "farewell"
	IntentThanks              PrimaryIntent = "thanks"
	IntentChitchat            PrimaryIntent = "chitchat"
	IntentPlanTrip            PrimaryIntent = "plan_trip"
	IntentShowItinerary       PrimaryIntent = "show_itinerary"
	IntentFindSpot            PrimaryIntent = "find_spot"
	IntentFindHotel           PrimaryIntent = "find_hotel"
	IntentFindFood            PrimaryIntent = "find_food"
	IntentBookHotel           PrimaryIntent = "book_hotel"
	IntentCalculateCost       PrimaryIntent = "calculate_cost"
	IntentUpdatePeopleCount   PrimaryIntent = "update_people_count"
	IntentGetPlaceDetails     PrimaryIntent = "get_place_details"
	IntentGetLocationTips     PrimaryIntent = "get_location_tips"
	IntentGetLocationDetails  PrimaryIntent = "get_location_details"
	IntentGetDistance         PrimaryIntent = "get_distance"
	IntentGetDirections       PrimaryIntent = "get_directions"
	IntentGetWeatherForecast  PrimaryIntent = "get_weather_forecast"
	IntentMoreSpots           PrimaryIntent = "more_spots"
	IntentMoreHotels          PrimaryIntent = "more_hotels"
	IntentMoreFood            PrimaryIntent = "more_food"
	IntentGetDetail           PrimaryIntent = "get_detail"
	IntentGeneralQA           PrimaryIntent = "general_qa"
)

// intentPrecedence gives the tie-break order from spec §4.2 (earlier wins).
var intentPrecedence = []PrimaryIntent{
	IntentBookHotel,
	IntentCalculateCost,
	IntentShowItinerary,
	IntentUpdatePeopleCount,
	IntentGetPlaceDetails,
	IntentGetLocationTips,
	IntentFindHotel,
	IntentFindSpot,
	IntentFindFood,
	IntentPlanTrip,
	IntentGreeting,
	IntentChitchat,
}

// ResolvePrecedence returns the highest-precedence intent among candidates,
// falling back to the first candidate if none match the known table.
func ResolvePrecedence(candidates []PrimaryIntent) PrimaryIntent {
	set := make(map[PrimaryIntent]bool, len(candidates))
	for _, c := range candidates {
		set[c] = true
	}
	for _, p := range intentPrecedence {
		if set[p] {
			return p
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return IntentGeneralQA
}

// BudgetLevel is the coarse accommodation price tier.
type BudgetLevel string

const (
	BudgetThrifty BudgetLevel = "thrifty"
	BudgetMid     BudgetLevel = "mid"
	BudgetLuxury  BudgetLevel = "luxury"
)

// CompanionType describes who the traveler is with.
type CompanionType string

const (
	CompanionSolo     CompanionType = "solo"
	CompanionCouple   CompanionType = "couple"
	CompanionFamily   CompanionType = "family"
	CompanionFriends  CompanionType = "friends"
	CompanionBusiness CompanionType = "business"
)

// FlowAction is a directive emitted by the extractor about conversational flow.
type FlowAction string

const (
	FlowContinue FlowAction = "continue"
	FlowFinalize FlowAction = "finalize"
	FlowBack     FlowAction = "back"
	FlowCancel   FlowAction = "cancel"
	FlowNone     FlowAction = ""
)

// ContextRelation classifies how an utterance relates to the running context.
type ContextRelation string

const (
	RelationNewTopic    ContextRelation = "new_topic"
	RelationContinuation ContextRelation = "continuation"
	RelationRefinement  ContextRelation = "refinement"
	RelationReference   ContextRelation = "reference"
)

// WorkflowState enumerates the traveler pipeline states (§4.5).
type WorkflowState string

const (
	StateInitial         WorkflowState = "INITIAL"
	StateGatheringInfo   WorkflowState = "GATHERING_INFO"
	StateChoosingSpots   WorkflowState = "CHOOSING_SPOTS"
	StateChoosingHotel   WorkflowState = "CHOOSING_HOTEL"
	StateReadyToFinalize WorkflowState = "READY_TO_FINALIZE"
	StateCostEstimation  WorkflowState = "COST_ESTIMATION"
	StateFinalized       WorkflowState = "FINALIZED"
)

// TaskType is the closed set of sub-task kinds the Planner may emit.
type TaskType string

const (
	TaskFindSpots       TaskType = "find_spots"
	TaskFindHotels      TaskType = "find_hotels"
	TaskFindFood        TaskType = "find_food"
	TaskCreateItinerary TaskType = "create_itinerary"
	TaskCalculateCost   TaskType = "calculate_cost"
	TaskGeneralInfo     TaskType = "general_info"
)

// PipelineStage groups sub-tasks for streamed, ordered execution (§4.9).
type PipelineStage string

const (
	StageDiscovery PipelineStage = "discovery"
	StageSpots     PipelineStage = "spots"
	StageHotels    PipelineStage = "hotels"
	StageFood      PipelineStage = "food"
	StageItinerary PipelineStage = "itinerary"
	StageCost      PipelineStage = "cost"
)

// StageOrder is the fixed streaming/section order (§5 ordering guarantee).
var StageOrder = []PipelineStage{
	StageDiscovery, StageSpots, StageHotels, StageFood, StageItinerary, StageCost,
}

// UIType enumerates the shapes a Response Chunk's ui_data may take.
type UIType string

const (
	UINone               UIType = "none"
	UIText               UIType = "text"
	UIGreeting           UIType = "greeting"
	UIChitchat           UIType = "chitchat"
	UIThanks             UIType = "thanks"
	UIFarewell           UIType = "farewell"
	UIOptions            UIType = "options"
	UIHotelCards         UIType = "hotel_cards"
	UISpotCards          UIType = "spot_cards"
	UIFoodCards          UIType = "food_cards"
	UIItinerary          UIType = "itinerary"
	UIItineraryBuilder   UIType = "itinerary_builder"
	UIItineraryDisplay   UIType = "itinerary_display"
	UIBooking            UIType = "booking"
	UIBookingPrompt      UIType = "booking_prompt"
	UIComprehensive      UIType = "comprehensive"
	UICost               UIType = "cost"
	UICostBreakdown      UIType = "cost_breakdown"
	UIDistanceInfo       UIType = "distance_info"
	UISpotDetail         UIType = "spot_detail"
	UIHotelDetail        UIType = "hotel_detail"
	UITips               UIType = "tips"
	UIMonthSelector      UIType = "month_selector"
	UISpotSelectorTable  UIType = "spot_selector_table"
	UISpotSelectorUpdate UIType = "spot_selector_update"
	UIError              UIType = "error"
)

// ChunkStatus is the status field of a Response Chunk.
type ChunkStatus string

const (
	StatusPartial  ChunkStatus = "partial"
	StatusComplete ChunkStatus = "complete"
	StatusError    ChunkStatus = "error"
	StatusBlocked  ChunkStatus = "blocked"
)

// IssueSeverity classifies a Verification Result issue.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// Verdict is the overall outcome of itinerary verification.
type Verdict string

const (
	VerdictPass    Verdict = "pass"
	VerdictWarning Verdict = "warning"
	VerdictFail    Verdict = "fail"
)
