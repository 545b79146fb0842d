package coretypes

import "encoding/json"

// CurrentSchemaVersion is bumped whenever Context's on-wire shape changes.
const CurrentSchemaVersion = 1

// DefaultRecentResultCap bounds last_spots/last_hotels/last_foods and the
// chat history ring (§3 "bounded lists for reference resolution").
const DefaultRecentResultCap = 10

// Slots holds the traveler-pipeline slots that persist across turns.
type Slots struct {
	Destination   string        `json:"destination,omitempty"`
	Duration      int           `json:"duration,omitempty"`
	StartDate     string        `json:"start_date,omitempty"`
	Budget        int64         `json:"budget,omitempty"`
	BudgetLevel   BudgetLevel   `json:"budget_level,omitempty"`
	PeopleCount   int           `json:"people_count,omitempty"`
	CompanionType CompanionType `json:"companion_type,omitempty"`
	Interests     []string      `json:"interests,omitempty"`
}

// SelectedSpot is a spot promoted into the traveler's running selection.
type SelectedSpot struct {
	SpotID      string  `json:"spot_id"`
	Name        string  `json:"name"`
	Day         int     `json:"day"`
	Lat         float64 `json:"lat,omitempty"`
	Lng         float64 `json:"lng,omitempty"`
	Image       string  `json:"image,omitempty"`
	Category    string  `json:"category,omitempty"`
	Placeholder bool    `json:"placeholder,omitempty"`
}

// Selections tracks the traveler's running hotel/spot choices.
type Selections struct {
	SelectedHotel      map[string]any `json:"selected_hotel,omitempty"`
	SelectedHotelPrice int64          `json:"selected_hotel_price,omitempty"`
	SelectedSpots      []SelectedSpot `json:"selected_spots,omitempty"`
	SelectedSpotIDs    map[string]bool `json:"selected_spot_ids,omitempty"`
}

// RecentResults is the bounded reference-resolution cache.
type RecentResults struct {
	LastSpots  []map[string]any `json:"last_spots,omitempty"`
	LastHotels []map[string]any `json:"last_hotels,omitempty"`
	LastFoods  []map[string]any `json:"last_foods,omitempty"`
}

// ItineraryBuilderState is the Interactive Itinerary Builder's sub-dialog
// state, nested inside Context with no back-pointer (DESIGN NOTES §9).
type ItineraryBuilderState struct {
	Location             string                    `json:"location"`
	TotalDays             int                       `json:"total_days"`
	CurrentDay            int                       `json:"current_day"`
	DaysPlan              map[int][]SelectedSpot    `json:"days_plan"`
	AvailableSpots        []map[string]any          `json:"available_spots,omitempty"`
	WaitingForStartDate   bool                      `json:"waiting_for_start_date"`
	WaitingForMonth       bool                      `json:"waiting_for_month_selection"`
	AutoGenerateMode      bool                      `json:"auto_generate_mode"`
	Budget                int64                     `json:"budget,omitempty"`
	PeopleCount           int                       `json:"people_count,omitempty"`
}

// ItineraryDay is one finalized day of a plan.
type ItineraryDay struct {
	Day   int            `json:"day"`
	Spots []SelectedSpot `json:"spots"`
}

// LastItinerary is the finalized plan (§3).
type LastItinerary struct {
	Location      string               `json:"location"`
	Duration      int                  `json:"duration"`
	Days          []ItineraryDay       `json:"days"`
	EstimatedCost map[string]any       `json:"estimated_cost,omitempty"`
	Verification  *VerificationResult  `json:"verification,omitempty"`
}

// Workflow carries the state machine's bookkeeping.
type Workflow struct {
	State          WorkflowState `json:"workflow_state"`
	LastIntent     PrimaryIntent `json:"last_intent,omitempty"`
	AnsweredIntents map[string]bool `json:"answered_intents,omitempty"`
	ChatHistory    []ChatMessage `json:"chat_history,omitempty"`
}

// ChatMessage is one turn of raw conversation, role is "user" or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Context is the per-session mutable record owned by the session layer and
// passed by reference into the core for the duration of one turn.
type Context struct {
	SchemaVersion int `json:"schema_version"`

	SessionID string `json:"session_id"`

	Slots         Slots                  `json:"slots"`
	Selections    Selections             `json:"selections"`
	Recent        RecentResults          `json:"recent_results"`
	Builder       *ItineraryBuilderState `json:"itinerary_builder,omitempty"`
	LastItinerary *LastItinerary         `json:"last_itinerary,omitempty"`
	Workflow      Workflow               `json:"workflow"`

	// Extra preserves fields this version doesn't know about so the
	// serialized Context round-trips forward-compatibly (§6, §9).
	Extra map[string]json.RawMessage `json:"-"`
}

// contextAlias has Context's exact field set but none of its methods, so
// MarshalJSON/UnmarshalJSON can delegate the known fields to encoding/json
// without recursing into themselves.
type contextAlias Context

// MarshalJSON merges Extra back into the top level so a key this version
// doesn't know about round-trips byte-identically instead of nesting under
// "extra" (§6, §9).
func (c Context) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(contextAlias(c))
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return known, nil
	}
	var merged map[string]json.RawMessage
	if err := json.Unmarshal(known, &merged); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON decodes the known fields normally, then stashes any
// remaining top-level keys into Extra so a future schema version's fields
// survive a read-modify-write by this one (§6, §9).
func (c *Context) UnmarshalJSON(data []byte) error {
	var alias contextAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	known, err := json.Marshal(alias)
	if err != nil {
		return err
	}
	var knownKeys map[string]json.RawMessage
	if err := json.Unmarshal(known, &knownKeys); err != nil {
		return err
	}
	for k := range knownKeys {
		delete(raw, k)
	}
	delete(raw, "extra")

	*c = Context(alias)
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// NewContext constructs a fresh Context for a brand new session.
func NewContext(sessionID string) *Context {
	return &Context{
		SchemaVersion: CurrentSchemaVersion,
		SessionID:     sessionID,
		Selections: Selections{
			SelectedSpotIDs: map[string]bool{},
		},
		Workflow: Workflow{
			State:           StateInitial,
			AnsweredIntents: map[string]bool{},
		},
	}
}

// AppendChatHistory appends a message, trimming to DefaultRecentResultCap*2
// (a small multiple, since chat history needs more context than a
// reference-resolution cache).
func (c *Context) AppendChatHistory(role, content string) {
	c.Workflow.ChatHistory = append(c.Workflow.ChatHistory, ChatMessage{Role: role, Content: content})
	cap := DefaultRecentResultCap * 2
	if len(c.Workflow.ChatHistory) > cap {
		c.Workflow.ChatHistory = c.Workflow.ChatHistory[len(c.Workflow.ChatHistory)-cap:]
	}
}

// MarkSpotSelected records a spot id as selected, for the "do not re-offer"
// invariant in §3.
func (c *Context) MarkSpotSelected(id string) {
	if c.Selections.SelectedSpotIDs == nil {
		c.Selections.SelectedSpotIDs = map[string]bool{}
	}
	c.Selections.SelectedSpotIDs[id] = true
}

// Clone performs a JSON round-trip deep copy, used by the orchestrator to
// hand each streamed chunk an independent snapshot (§5 "final Context
// attached to each chunk reflects the orchestrator's view at the moment of
// emission").
func (c *Context) Clone() (*Context, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	var out Context
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Serialize marshals the Context for persistence by the caller (§6).
func (c *Context) Serialize() ([]byte, error) {
	return json.Marshal(c)
}

// RestoreContext deserializes a persisted Context. An empty payload yields a
// fresh Context for sessionID, per the Turn request contract (§6).
func RestoreContext(sessionID string, raw []byte) (*Context, error) {
	if len(raw) == 0 {
		return NewContext(sessionID), nil
	}
	var c Context
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.SessionID == "" {
		c.SessionID = sessionID
	}
	if c.Selections.SelectedSpotIDs == nil {
		c.Selections.SelectedSpotIDs = map[string]bool{}
	}
	if c.Workflow.AnsweredIntents == nil {
		c.Workflow.AnsweredIntents = map[string]bool{}
	}
	return &c, nil
}

// PushRecentSpots replaces last_spots, bounded to DefaultRecentResultCap.
func (r *RecentResults) PushRecentSpots(spots []map[string]any) {
	r.LastSpots = boundList(spots, DefaultRecentResultCap)
}

// PushRecentHotels replaces last_hotels, bounded to DefaultRecentResultCap.
func (r *RecentResults) PushRecentHotels(hotels []map[string]any) {
	r.LastHotels = boundList(hotels, DefaultRecentResultCap)
}

// PushRecentFoods replaces last_foods, bounded to DefaultRecentResultCap.
func (r *RecentResults) PushRecentFoods(foods []map[string]any) {
	r.LastFoods = boundList(foods, DefaultRecentResultCap)
}

func boundList(list []map[string]any, cap int) []map[string]any {
	if len(list) <= cap {
		return list
	}
	return list[:cap]
}
