package insight

// Engine runs its rules in order over one Context.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine with all built-in rules registered.
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			Drivers,
			Drains,
			Schedule,
			TopInsight,
			OneChange,
		},
	}
}

// Run executes every rule and returns the collected insights. List fields
// are never nil.
func (e *Engine) Run(ctx *Context) Insights {
	out := Insights{
		ProductivityDrivers:     []Impact{},
		ProductivityDrains:      []Impact{},
		ScheduleRecommendations: []string{},
	}
	if ctx == nil {
		ctx = &Context{}
	}
	for _, rule := range e.rules {
		rule(ctx, &out)
	}
	return out
}

// Generate runs the default engine.
func Generate(ctx *Context) Insights {
	return NewEngine().Run(ctx)
}
