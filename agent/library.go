package agent

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// Function is a tool a model can call.
type Function interface {
	// Declare this function
	Declaration() *genai.FunctionDeclaration
	// Call this function
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// Library answers function calls made by a model.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// NewLibrary returns a Library dispatching calls to the function of the same
// name. Calls are logged at debug level, failed ones at warning level.
func NewLibrary[T Function](functions []T) Library {
	byName := make(map[string]Function, len(functions))
	for _, f := range functions {
		byName[f.Declaration().Name] = f
	}
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		log := logrus.WithFields(logrus.Fields{"function": call.Name, "args": call.Args})
		f, ok := byName[call.Name]
		if !ok {
			log.Warn("unknown function")
			return respond(call.ID, call.Name, "", fmt.Errorf("unknown function %s", call.Name))
		}
		resp := f.Call(ctx, call.ID, call.Args)
		if e, ok := resp.Response["error"]; ok {
			log.Warn(e)
		} else {
			log.Debug("called")
		}
		return resp
	}
}

// NewDeclaration returns the declarations of all functions.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, e := range functions {
		result = append(result, e.Declaration())
	}
	return result
}

// Func implements a simple Function
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// respond builds the response of a call, either its output or its error.
func respond(id, name, output string, err error) *genai.FunctionResponse {
	if err != nil {
		return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
	}
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": output}}
}
