package agent

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// maxCallRounds bounds the function calls an expert can chain before answering.
const maxCallRounds = 8

// Expert represent a chat with a business expert.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// Start creates the chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Started reports whether the chat session exists.
func (e *Expert) Started() bool { return e.chat != nil }

// Ask sends parts and returns the text answer, answering every function call
// the expert makes on the way.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	if e.chat == nil {
		return "", fmt.Errorf("expert %s is not started", e.Name)
	}
	for range maxCallRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			text := resp.Text()
			if text == "" {
				return "", fmt.Errorf("no response from expert %s", e.Name)
			}
			return text, nil
		}
		if e.Library == nil {
			return "", fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
		}
		parts = make([]*genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, call)})
		}
	}
	return "", fmt.Errorf("expert %s did not answer after %d rounds of function calls", e.Name, maxCallRounds)
}

// Declaration returns the function declaration to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's reponse, in markdown.",
		},
	}
}

// Call asks this expert the question in args.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return respond(id, e.Name, "", fmt.Errorf("argument 'question' is not a string as expected but %T", args["question"]))
	}
	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return respond(id, e.Name, "", fmt.Errorf("something went wrong while calling the expert: %w", err))
	}
	logrus.WithFields(logrus.Fields{"expert": e.Name, "question": question}).Debug(answer)
	return respond(id, e.Name, answer, nil)
}
