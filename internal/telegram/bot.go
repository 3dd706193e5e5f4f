package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"ovona-planner/internal/config"
	"ovona-planner/internal/metrics"
	"ovona-planner/internal/planner"
	"ovona-planner/internal/profile"
	"ovona-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Bot wraps the Telegram API around the meal planner pipeline.
type Bot struct {
	api          *tgbotapi.BotAPI
	planner      *planner.Planner
	planRepo     *planner.Repository
	shoppingRepo *shopping.Repository
	profileRepo  *profile.Repository
	metricsStore *metrics.Store
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	mealPlanner *planner.Planner,
	planRepo *planner.Repository,
	shoppingRepo *shopping.Repository,
	profileRepo *profile.Repository,
	metricsStore *metrics.Store,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		planner:      mealPlanner,
		planRepo:     planRepo,
		shoppingRepo: shoppingRepo,
		profileRepo:  profileRepo,
		metricsStore: metricsStore,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.Message == nil {
		return
	}

	from := update.Message.From.ID
	if from != b.cfg.TelegramAllowUserID && from != b.cfg.AdminTelegramID {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", from, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	if msg.Text == "/metrics" {
		b.handleMetricsRequest(msg)
		return
	}
	b.handlePlanRequest(msg)
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message) {
	statusText := "🧑‍🍳 *Thinking...* \n(Generating your plan and pricing the shopping list)"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	ctx := context.Background()

	prof, err := b.profileRepo.Default(ctx)
	if err == nil && prof == nil {
		err = fmt.Errorf("no stored profile; create one with the CLI profile command")
	}

	var result *planner.PlanResult
	if err == nil {
		result, err = b.generate(ctx, *prof)
	}

	if err != nil {
		log.Printf("Error generating plan: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText := fmt.Sprintf("❌ *Error generating plan:*\n```\n%v\n```", safeErr)
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
		edit.ParseMode = "Markdown"
		b.api.Send(edit)
		return
	}

	caloriesText, shoppingText := formatResultMarkdownParts(result)

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, caloriesText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)

	shoppingMsg := tgbotapi.NewMessage(msg.Chat.ID, shoppingText)
	shoppingMsg.ParseMode = "Markdown"
	b.api.Send(shoppingMsg)
}

func (b *Bot) generate(ctx context.Context, prof profile.Profile) (*planner.PlanResult, error) {
	result, meta, err := b.planner.GeneratePlan(ctx, prof, b.cfg.DefaultDays)
	if err != nil {
		return nil, err
	}

	if err := b.metricsStore.RecordMeta(meta); err != nil {
		log.Printf("Warning: failed to record metrics: %v", err)
	}

	planID, err := b.planRepo.Save(ctx, prof.Name, result)
	if err != nil {
		log.Printf("Warning: failed to save plan for %s: %v", prof.Name, err)
	} else {
		_, err := b.shoppingRepo.Save(ctx, &shopping.List{
			UserID:    prof.Name,
			PlanID:    planID,
			Items:     result.ShoppingList,
			TotalCost: result.TotalCost.StringFixed(2),
		})
		if err != nil {
			log.Printf("Warning: failed to save shopping list: %v", err)
		}
	}

	return result, nil
}

// stapleEmojis decorate the pantry footer.
var stapleEmojis = map[string]string{
	"olive oil":   "🫒",
	"salt":        "🧂",
	"pepper":      "🌶️",
	"soy sauce":   "🍶",
	"lemon juice": "🍋",
	"vinegar":     "🧴",
	"spices":      "🧂",
}

func formatResultMarkdownParts(result *planner.PlanResult) (string, string) {
	var cb strings.Builder
	cb.WriteString("🔥 *Calories Per Day*\n\n")
	if len(result.Calories) == 0 {
		cb.WriteString("_No calorie totals found in the plan_\n")
	} else {
		days := make([]int, 0, len(result.Calories))
		for day := range result.Calories {
			days = append(days, day)
		}
		sort.Ints(days)
		for _, day := range days {
			cb.WriteString(fmt.Sprintf("*Day %d*: %d kcal\n", day, result.Calories[day]))
		}
		if result.TargetKcal > 0 {
			cb.WriteString(fmt.Sprintf("\n🎯 Target: %d kcal/day\n", result.TargetKcal))
		}
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Weekly Shopping List*\n\n")
	if len(result.ShoppingList) == 0 {
		sb.WriteString("_No ingredients found_\n")
	} else {
		for _, line := range result.ShoppingList {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("\n*%s*\n", shopping.FormatTotal(result.TotalCost)))
		sb.WriteString("_\\* = estimated price_\n")
	}

	if len(result.StaplesUsed) > 0 {
		var emojis []string
		for _, staple := range result.StaplesUsed {
			if e, ok := stapleEmojis[staple]; ok {
				emojis = append(emojis, e)
			} else {
				emojis = append(emojis, "🧂")
			}
		}
		sb.WriteString(fmt.Sprintf("\n*Pantry staples used:* %s\n", strings.Join(emojis, " ")))
	}

	return cb.String(), sb.String()
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "⛔ *Access Denied*: Admin only."))
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.api.Send(tgbotapi.NewMessage(chatID, "❌ Error fetching metrics."))
		return
	}

	health := metrics.GetSysHealth("data")

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent LLM Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataSize))

	reply := tgbotapi.NewMessage(chatID, sb.String())
	reply.ParseMode = "Markdown"
	b.api.Send(reply)
}
