package main

import (
	"github.com/alecthomas/kong"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"
)

// Globals are the flags shared by every command.
type Globals struct {
	PowerURL string `name:"power-url" env:"SKYRA_POWER_URL" help:"NASA POWER daily point endpoint." default:"https://power.larc.nasa.gov/api/temporal/daily/point"`

	LLMKey       string `name:"llm-key" env:"OPENAI_API_KEY" help:"API key for the chat completion endpoint. Summaries are disabled when empty."`
	LLMBaseURL   string `name:"llm-base-url" env:"SKYRA_LLM_BASE_URL" help:"OpenAI-compatible base URL."`
	LLMModel     string `name:"llm-model" env:"SKYRA_LLM_MODEL" help:"Model used for analysis summaries." default:"gpt-4o-mini"`
	LLMChatModel string `name:"llm-chat-model" env:"SKYRA_LLM_CHAT_MODEL" help:"Model used for chat replies." default:"gpt-4o-mini"`
}

type CLI struct {
	Globals

	Serve   ServeCmd   `cmd:"" default:"1" help:"Run the HTTP API."`
	Analyze AnalyzeCmd `cmd:"" help:"Print the historical odds for one location and date."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("skyra"),
		kong.Description("Historical weather odds for any place and calendar day."),
		kong.UsageOnError(),
		kong.Configuration(kongdotenv.ENVFileReader, ".env"),
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}
