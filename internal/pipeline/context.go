package pipeline

import (
	"strings"
	"sync"
	"time"

	"riftcoach/internal/schema"

	"github.com/google/uuid"
)

// CoachContext carries one request through the stage chain. Stages write
// their outputs here and later stages read them; the accessors copy so a
// stage can never mutate another stage's published result.
type CoachContext struct {
	TraceID   string
	Patch     string
	StartedAt time.Time

	ImagePath       string
	ManualChampions []string

	mu        sync.RWMutex
	slots     *schema.SlotResolution
	userCtx   *schema.UserContext
	role      *schema.RoleResult
	knowledge *schema.KnowledgeBundle
	plan      *schema.BuildPlan
	pkg       *schema.CoachPackage
	warnings  []string
}

// NewContext initializes a context for one coaching request.
func NewContext(req schema.CoachRequest, patch string) *CoachContext {
	manual := make([]string, len(req.ManualChampions))
	copy(manual, req.ManualChampions)
	return &CoachContext{
		TraceID:         uuid.NewString(),
		Patch:           patch,
		StartedAt:       time.Now(),
		ImagePath:       strings.TrimSpace(req.ImagePath),
		ManualChampions: manual,
	}
}

func (cc *CoachContext) SetSlots(s schema.SlotResolution) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.slots = &s
}

func (cc *CoachContext) Slots() (schema.SlotResolution, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	if cc.slots == nil {
		return schema.SlotResolution{}, false
	}
	return *cc.slots, true
}

func (cc *CoachContext) SetUserContext(u schema.UserContext) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.userCtx = &u
}

func (cc *CoachContext) UserContext() (schema.UserContext, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	if cc.userCtx == nil {
		return schema.UserContext{}, false
	}
	return *cc.userCtx, true
}

func (cc *CoachContext) SetRole(r schema.RoleResult) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.role = &r
}

func (cc *CoachContext) Role() (schema.RoleResult, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	if cc.role == nil {
		return schema.RoleResult{}, false
	}
	return *cc.role, true
}

func (cc *CoachContext) SetKnowledge(k schema.KnowledgeBundle) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.knowledge = &k
}

func (cc *CoachContext) Knowledge() (schema.KnowledgeBundle, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	if cc.knowledge == nil {
		return schema.KnowledgeBundle{}, false
	}
	return *cc.knowledge, true
}

func (cc *CoachContext) SetPlan(p schema.BuildPlan) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.plan = &p
}

func (cc *CoachContext) Plan() (schema.BuildPlan, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	if cc.plan == nil {
		return schema.BuildPlan{}, false
	}
	return *cc.plan, true
}

func (cc *CoachContext) SetPackage(p schema.CoachPackage) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pkg = &p
}

func (cc *CoachContext) Package() (schema.CoachPackage, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	if cc.pkg == nil {
		return schema.CoachPackage{}, false
	}
	return *cc.pkg, true
}

// AddWarning records a non-fatal note that ends up in the final package.
func (cc *CoachContext) AddWarning(msg string) {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.warnings = append(cc.warnings, msg)
}

func (cc *CoachContext) Warnings() []string {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	out := make([]string, len(cc.warnings))
	copy(out, cc.warnings)
	return out
}
