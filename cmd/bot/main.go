// Console front-end for the registration bot. It drives the same
// conversation a chat gateway would, reading messages from stdin and
// printing replies, with drafts persisted in redis between messages.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/NyuntSinHtet96/event-registeration-bot/config"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/bot"
	"github.com/NyuntSinHtet96/event-registeration-bot/internal/botflow"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/apiclient"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/logger"
	"github.com/NyuntSinHtet96/event-registeration-bot/pkg/redisclient"
)

// chatID identifies the single local console conversation.
const chatID int64 = 1

func main() {
	cfg := config.Load()
	log := logger.New("registration-bot")

	rdb, err := redisclient.New(cfg.RedisAddr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect redis")
	}
	defer rdb.Close()

	sessions := botflow.NewSessionStore(rdb, cfg.BotSessionTTL)
	api := apiclient.New(cfg.APIBaseURL)
	b := bot.New(api, sessions, log)

	log.Info().Str("api", cfg.APIBaseURL).Msg("bot console started, type /start to begin")

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		reply, err := b.HandleMessage(ctx, chatID, scanner.Text())
		if err != nil {
			log.Error().Err(err).Msg("failed to handle message")
			fmt.Println("Something went wrong, please try again.")
		} else {
			fmt.Println(reply)
		}
		fmt.Print("> ")
	}
	if err := scanner.Err(); err != nil {
		log.Fatal().Err(err).Msg("stdin closed unexpectedly")
	}
}
