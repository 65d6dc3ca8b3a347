package agent

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"google.golang.org/genai"

	"github.com/exilefund/fund"
	"github.com/exilefund/fund/docs"
	"github.com/exilefund/fund/renderer"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name: "Facilitator",
		// Used by facilitators to know what they can expected from the expert
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user runs an investment fund in a game economy: investors pool divine orbs,
			the fund flips items on the marketplace, and the user asks about balances, unit
			prices, investors and pending requests.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewScout is an expert on the game economy at large, grounded by search.
func NewScout() *Expert {
	return &Expert{
		Name: "Scout",
		Description: `This is an expert on the Path of Exile 2 economy,
		aware of leagues, currency markets, item metas and price trends.
		Ask the Scout whenever you need recent or grounding information
		about the game economy.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert on the Path of Exile 2 economy: currencies, item markets,
			league mechanics and price trends. You leverage Google Search to ground your
			assertions in a solid truth, and you relate the latest news to the user's request.
				`}}},
		},
	}
}

// NewAccountant builds the expert that reads the fund's book. bookPath
// is the private book file the functions load on every call, so the
// expert always answers from the latest saved state.
func NewAccountant(bookPath string) *Expert {

	lib := []Function{summaryFunc(bookPath), statementFunc(bookPath), topicFunc()}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the fund's book.
		He can report the fund's balances, unit price, investors, their positions and
		pending deposit or withdrawal requests.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of an investment fund's book.
				You know how to use the Tools to extract relevant information about the fund.
				You are part of a team of experts, yours is everything recorded in the book.
				They might ask you questions in approximative language, figure out what they meant.

				Use the available tools to get information about the fund
				  - the fund-wide summary (balances, unit price, investors)
				  - a single investor's statement
				  - documentation topics explaining the fund's rules
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func summaryFunc(bookPath string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary reports the whole fund: currency balances, unit price,
			total units, high-water mark, every investor's position and any pending requests.`,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: map[string]*genai.Schema{},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted summary of the fund.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			b, err := fund.LoadBook(bookPath, decimal.Zero)
			if err != nil {
				return errResponse(id, "Summary", fmt.Errorf("could not load book: %w", err))
			}
			s := &renderer.Summary{
				Date:    fund.Today(),
				Haircut: b.Fund.Haircut,
				Book:    b,
			}
			return okResponse(id, "Summary", renderer.SummaryMarkdown(s))
		},
	}
}

func statementFunc(bookPath string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Statement",
			Description: `Statement reports one investor: units held, current value, share
			of the fund, cost basis, profit, pending request and deposit history.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The investor's name, matched case-insensitively.",
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted statement for the investor.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["name"].(string)
			if !ok {
				return errResponse(id, "Statement", fmt.Errorf("argument 'name' is not a string as expected but %T", args["name"]))
			}
			b, err := fund.LoadBook(bookPath, decimal.Zero)
			if err != nil {
				return errResponse(id, "Statement", fmt.Errorf("could not load book: %w", err))
			}
			inv := b.Find(name)
			if inv == nil {
				return errResponse(id, "Statement", fmt.Errorf("unknown investor %q", name))
			}
			s := &renderer.Statement{
				Date:      fund.Today(),
				Investor:  inv,
				UnitPrice: b.Fund.UnitPrice,
			}
			return okResponse(id, "Statement", renderer.RenderStatement(s))
		},
	}
}

func topicFunc() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Topic",
			Description: `Topic returns the fund's documentation about one topic: valuation,
			fees, pending, rates, codes or publishing. Use "*" for all of them.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Description: "The topic name, or \"*\" for all topics.",
					},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown documentation for the topic.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			topic, ok := args["topic"].(string)
			if !ok {
				return errResponse(id, "Topic", fmt.Errorf("argument 'topic' is not a string as expected but %T", args["topic"]))
			}
			content, err := docs.GetTopic(topic)
			if err != nil {
				return errResponse(id, "Topic", err)
			}
			return okResponse(id, "Topic", content)
		},
	}
}
