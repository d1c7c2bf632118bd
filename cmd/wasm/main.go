//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"codechat/config"
	"codechat/internal/adapter/memstore"
	"codechat/internal/usecase"

	"github.com/rs/zerolog"
)

var (
	engine *usecase.Engine
	chat   *usecase.ChatService
)

func init() {
	cfg := config.DefaultConfig()
	cfg.Lexicon.Source = config.LexiconSourceEmbedded
	cfg.Lexicon.DataDir = ""

	var err error
	engine, err = usecase.NewEngine(context.Background(), cfg, usecase.EngineOptions{}, zerolog.Nop())
	if err != nil {
		panic(err)
	}
	chat = usecase.NewChatService(engine.Resolver, memstore.NewMemoryStore())
}

func main() {
	c := make(chan struct{})

	js.Global().Set("codechatResolve", js.FuncOf(resolve))
	js.Global().Set("codechatStart", js.FuncOf(startSession))
	js.Global().Set("codechatSend", js.FuncOf(sendMessage))
	js.Global().Set("codechatTranscript", js.FuncOf(transcript))
	js.Global().Set("codechatEnd", js.FuncOf(endSession))

	<-c
}

func resolve(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: codechatResolve(text)")
	}
	res := engine.Resolver.Explain(args[0].String())
	return makeResult(map[string]interface{}{
		"answer":     res.Answer,
		"source":     res.Source,
		"topicId":    res.TopicID,
		"confidence": res.Confidence,
	})
}

func startSession(this js.Value, args []js.Value) interface{} {
	id, err := chat.StartSession()
	if err != nil {
		return makeError("start failed: " + err.Error())
	}
	return makeResult(map[string]interface{}{
		"sessionId": id,
	})
}

func sendMessage(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: codechatSend(sessionId, message)")
	}
	turn, err := chat.Send(args[0].String(), args[1].String())
	if err != nil {
		return makeError(err.Error())
	}
	return makeResult(map[string]interface{}{
		"reply": turn.Message,
	})
}

func transcript(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: codechatTranscript(sessionId)")
	}
	turns, err := chat.Transcript(args[0].String())
	if err != nil {
		return makeError(err.Error())
	}

	output := make([]map[string]interface{}, 0, len(turns))
	for _, t := range turns {
		output = append(output, map[string]interface{}{
			"sender": t.Sender,
			"text":   t.Message,
		})
	}
	return makeResult(map[string]interface{}{
		"turns": output,
	})
}

func endSession(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return makeError("usage: codechatEnd(sessionId)")
	}
	if err := chat.EndSession(args[0].String()); err != nil {
		return makeError(err.Error())
	}
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
