// Package glotline provides an AI-powered JSON locale translation engine.
//
// Glotline translates the string values of a JSON document into a target
// locale using an LLM chat-completion provider, preserving keys and
// structure. Large documents are split into token-bounded chunks, failed
// chunks are retried and recursively subdivided, and results are merged
// into any pre-existing translation so repeated runs are incremental.
//
// Basic usage:
//
//	import (
//	    "context"
//	    "github.com/glotline/glotline"
//	    "github.com/glotline/glotline/provider"
//	)
//
//	func main() {
//	    p := provider.NewOpenAIProvider(provider.OpenAIConfig{
//	        APIKey: os.Getenv("OPENAI_API_KEY"),
//	    })
//
//	    t := glotline.NewTranslator("es", p)
//
//	    source := glotline.Document{"greeting": "Hello", "count": 5}
//	    result, err := t.TranslateDocument(context.Background(), source, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(result["greeting"]) // Hola
//	}
package glotline
