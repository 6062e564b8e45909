package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hilit308-creator/autosocial/internal/models"
	"github.com/hilit308-creator/autosocial/internal/transfer"
)

const generatorSystemInstruction = `You are a social media copywriter for small businesses.
You write captions, titles and hashtags tailored to a specific platform, brand tone and audience.
The response MUST be a single valid JSON object matching the shape requested in the prompt.
You MUST NOT wrap the JSON output in a markdown code block.
The response should contain ONLY the raw JSON string.`

// Instructions for the fixed rewrite command vocabulary. Unknown commands
// are rejected before any state is touched.
var rewriteInstructions = map[string]string{
	"shorter":           "Shorten the text to roughly half its length while keeping the main message.",
	"longer":            "Expand the text with more detail and examples.",
	"more_professional": "Make the text more professional and formal.",
	"more_warm":         "Make the text warmer, more personal and friendly.",
	"add_cta":           "Add a clear call to action at the end of the text.",
	"remove_emojis":     "Remove all emojis from the text.",
	"add_emojis":        "Add relevant emojis to the text, no more than three.",
	"instagram_style":   "Adapt the text to Instagram style: short, catchy, with emojis.",
	"linkedin_style":    "Adapt the text to LinkedIn style: professional, business-like, no emojis.",
	"tiktok_style":      "Adapt the text to TikTok style: very short, fun, dynamic.",
	"youtube_style":     "Adapt the text to YouTube style: detailed, explanatory, engaging.",
}

// RewriteInstruction resolves a rewrite command to its model instruction.
func RewriteInstruction(command string) (string, bool) {
	instruction, ok := rewriteInstructions[command]
	return instruction, ok
}

type GeneratorService interface {
	GenerateBundle(ctx context.Context, topic, voiceNotes string, platforms []string, profile *models.BrandProfile) transfer.ByPlatform
	RewriteText(ctx context.Context, text, instruction, platform, language string) (string, error)
}

type generatorService struct {
	llm TextModel
}

func NewGeneratorService(llm TextModel) GeneratorService {
	return &generatorService{llm: llm}
}

// GenerateBundle produces per-platform content for every requested
// platform. Each platform is attempted independently; an LLM failure or an
// unparsable reply drops that platform's content and is logged, never
// returned. There are no retries.
func (s *generatorService) GenerateBundle(ctx context.Context, topic, voiceNotes string, platforms []string, profile *models.BrandProfile) transfer.ByPlatform {
	var bundle transfer.ByPlatform

	for _, platform := range platforms {
		switch platform {
		case models.PlatformInstagram:
			caption, err := s.generateCaption(ctx, topic, voiceNotes, profile, platform, profile.EmojiLevel)
			if err != nil {
				slog.Info("instagram content generation failed", "error", err)
				continue
			}
			hashtags := s.generateHashtags(ctx, caption, profile, platform, 10, 4, 4, 2)
			bundle.Instagram = &transfer.InstagramContent{
				Caption:        caption,
				Hashtags:       hashtags,
				HashtagsString: strings.Join(hashtags, " "),
			}

		case models.PlatformFacebook:
			caption, err := s.generateCaption(ctx, topic, voiceNotes, profile, platform, profile.EmojiLevel)
			if err != nil {
				slog.Info("facebook content generation failed", "error", err)
				continue
			}
			bundle.Facebook = &transfer.FacebookContent{Caption: caption}

		case models.PlatformTiktok:
			caption, err := s.generateCaption(ctx, topic, voiceNotes, profile, platform, "medium")
			if err != nil {
				slog.Info("tiktok content generation failed", "error", err)
				continue
			}
			hashtags := s.generateHashtags(ctx, caption, profile, platform, 5, 2, 2, 1)
			bundle.Tiktok = &transfer.TiktokContent{Caption: caption, Hashtags: hashtags}

		case models.PlatformYoutube:
			description, err := s.generateCaption(ctx, topic, voiceNotes, profile, platform, "low")
			if err != nil {
				slog.Info("youtube content generation failed", "error", err)
				continue
			}
			title, err := s.generateTitle(ctx, topic, description)
			if err != nil {
				slog.Info("youtube title generation failed", "error", err)
				continue
			}
			bundle.Youtube = &transfer.YoutubeContent{
				Title:       title,
				Description: description,
				Tags:        brandedTags(profile.BrandedHashtags),
			}

		case models.PlatformLinkedin:
			caption, err := s.generateCaption(ctx, topic, voiceNotes, profile, platform, "none")
			if err != nil {
				slog.Info("linkedin content generation failed", "error", err)
				continue
			}
			bundle.Linkedin = &transfer.LinkedinContent{Caption: caption}
		}
	}

	return bundle
}

func (s *generatorService) generateCaption(ctx context.Context, topic, voiceNotes string, profile *models.BrandProfile, platform, emojiLevel string) (string, error) {
	prompt := buildCaptionPrompt(topic, voiceNotes, profile, platform, emojiLevel)

	raw, err := s.llm.GenerateText(ctx, generatorSystemInstruction, prompt)
	if err != nil {
		return "", fmt.Errorf("caption generation for %s: %w", platform, err)
	}

	var result transfer.CaptionResult
	if err := decodeModelJSON(raw, &result); err != nil {
		return "", fmt.Errorf("caption parse for %s: %w", platform, err)
	}
	if result.Caption == "" {
		return "", fmt.Errorf("caption generation for %s: model returned empty caption", platform)
	}

	return result.Caption, nil
}

// generateHashtags is best effort: a failed or unparsable reply yields an
// empty list rather than failing the platform's caption.
func (s *generatorService) generateHashtags(ctx context.Context, caption string, profile *models.BrandProfile, platform string, count, broad, niche, branded int) []string {
	prompt := buildHashtagsPrompt(caption, profile, platform, count, broad, niche, branded)

	raw, err := s.llm.GenerateText(ctx, generatorSystemInstruction, prompt)
	if err != nil {
		slog.Info("hashtag generation failed", "platform", platform, "error", err)
		return nil
	}

	var result transfer.HashtagsResult
	if err := decodeModelJSON(raw, &result); err != nil {
		slog.Info("hashtag parse failed", "platform", platform, "error", err)
		return nil
	}

	return result.Hashtags
}

func (s *generatorService) generateTitle(ctx context.Context, topic, caption string) (string, error) {
	prompt := fmt.Sprintf(`Write a YouTube video title for the following content.

Topic: %s
Caption: %s

Requirements:
- at most 60 characters
- engaging, sparks curiosity
- professional but warm

Return JSON:
{"title": "...", "alternatives": ["...", "..."]}`, topic, caption)

	raw, err := s.llm.GenerateText(ctx, generatorSystemInstruction, prompt)
	if err != nil {
		return "", fmt.Errorf("title generation: %w", err)
	}

	var result transfer.TitleResult
	if err := decodeModelJSON(raw, &result); err != nil {
		return "", fmt.Errorf("title parse: %w", err)
	}
	if result.Title == "" {
		return "", fmt.Errorf("title generation: model returned empty title")
	}

	return result.Title, nil
}

// RewriteText applies a single rewrite instruction to one platform's text.
func (s *generatorService) RewriteText(ctx context.Context, text, instruction, platform, language string) (string, error) {
	prompt := fmt.Sprintf(`%s

Original text:
"%s"

Platform: %s
Language: %s

Return JSON:
{"rewritten_text": "...", "diff_summary": "what changed"}`, instruction, text, platform, language)

	raw, err := s.llm.GenerateText(ctx, generatorSystemInstruction, prompt)
	if err != nil {
		return "", fmt.Errorf("rewrite for %s: %w", platform, err)
	}

	var result transfer.RewriteResult
	if err := decodeModelJSON(raw, &result); err != nil {
		return "", fmt.Errorf("rewrite parse for %s: %w", platform, err)
	}
	if result.RewrittenText == "" {
		return "", fmt.Errorf("rewrite for %s: model returned empty text", platform)
	}

	return result.RewrittenText, nil
}

func buildCaptionPrompt(topic, voiceNotes string, profile *models.BrandProfile, platform, emojiLevel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a social media caption for %s.\n\n", platform)
	fmt.Fprintf(&b, "Topic: %s\n", topic)
	if voiceNotes != "" {
		fmt.Fprintf(&b, "Voice notes: %s\n", voiceNotes)
	}
	fmt.Fprintf(&b, "Business type: %s\n", profile.BusinessType)
	fmt.Fprintf(&b, "Tone: %s\n", profile.Tone)
	fmt.Fprintf(&b, "Language: %s\n", profile.Language)
	fmt.Fprintf(&b, "Target audience: %s\n", profile.TargetAudience)
	fmt.Fprintf(&b, "\nRequirements:\n")
	fmt.Fprintf(&b, "- at most %d words\n", profile.MaxWordsFor(platform))
	fmt.Fprintf(&b, "- open with a strong hook\n")
	fmt.Fprintf(&b, "- end with a call to action (default: %s)\n", profile.DefaultCta)
	fmt.Fprintf(&b, "- emoji level: %s\n", emojiLevel)
	fmt.Fprintf(&b, "- avoid overly salesy language\n")
	fmt.Fprintf(&b, "\nReturn JSON:\n{\"caption\": \"...\", \"hook\": \"...\", \"cta\": \"...\"}")
	return b.String()
}

func buildHashtagsPrompt(caption string, profile *models.BrandProfile, platform string, count, broad, niche, branded int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d hashtags for this %s post:\n\n\"%s\"\n\n", count, platform, caption)
	fmt.Fprintf(&b, "Business type: %s\n", profile.BusinessType)
	fmt.Fprintf(&b, "Target audience: %s\n", profile.TargetAudience)
	fmt.Fprintf(&b, "\nRequired mix:\n")
	fmt.Fprintf(&b, "- %d broad (popular) hashtags\n", broad)
	fmt.Fprintf(&b, "- %d niche hashtags\n", niche)
	if profile.BrandedHashtags != "" {
		fmt.Fprintf(&b, "- %d branded hashtags from: %s\n", branded, profile.BrandedHashtags)
	}
	fmt.Fprintf(&b, "\nAll hashtags must be relevant to the content and suited to the platform.\n")
	fmt.Fprintf(&b, "\nReturn JSON:\n{\"hashtags\": [\"#...\", \"#...\"], \"notes\": \"...\"}")
	return b.String()
}

// decodeModelJSON tolerates models that ignore the no-fences instruction
// and wrap their reply in a markdown code block.
func decodeModelJSON(raw string, v any) error {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}
	return json.Unmarshal([]byte(text), v)
}

func brandedTags(brandedHashtags string) []string {
	if brandedHashtags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(brandedHashtags, ",") {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
