package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spigell/resume-agent/internal/ai/gemini"
	"github.com/spigell/resume-agent/internal/analysis"
	"github.com/spigell/resume-agent/internal/document"
	"github.com/spigell/resume-agent/internal/logger"
	"github.com/spigell/resume-agent/internal/report"
	"github.com/spigell/resume-agent/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptAskQuestion       = "Ask a question about the resume"
	PromptGenerateQuestions = "Generate interview questions"
	PromptSaveReport        = "Save the report to a file"
	PromptExit              = "Exit"

	defaultReportFile    = "resume-report.txt"
	defaultQuestionsFile = "interview-questions.md"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptAskQuestion, PromptGenerateQuestions, PromptSaveReport, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a role or a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "path to the resume file (.pdf or .txt)")
	analyzeCmd.Flags().String("role", "", "target role from the role catalogue")
	analyzeCmd.Flags().String("jd", "", "path to a job description file to extract skills from")
	analyzeCmd.Flags().Int("cutoff", 0, "minimum overall score for shortlisting")
	analyzeCmd.Flags().BoolP("auto", "y", false, "print the report and exit without the interactive menu")
	analyzeCmd.Flags().String("report-file", "", "file to save the report to")

	analyzeCmd.MarkFlagRequired("resume")

	viper.BindPFlag("cutoff-score", analyzeCmd.Flags().Lookup("cutoff"))
	viper.BindPFlag("report-file", analyzeCmd.Flags().Lookup("report-file"))
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		config = &Config{}
	}

	logger.Info("starting the resume-agent", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	session, err := newSession(ctx, config, logger)
	if err != nil {
		logger.Fatal("preparing the analysis session", zap.Error(err))
	}

	req, err := buildRequest(cmd, logger)
	if err != nil {
		logger.Fatal("resolving analysis inputs", zap.Error(err))
	}

	result, err := session.Analyze(ctx, req)
	if err != nil {
		logger.Fatal("analyzing the resume", zap.Error(err))
	}

	rendered := report.Analysis(result)
	fmt.Println(rendered)

	if cmd.Flag("auto").Value.String() == "true" {
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, session, config, rendered, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, session *analysis.Session, config *Config, rendered string, logger *zap.Logger) error {
	switch action {
	case PromptAskQuestion:
		return askQuestion(ctx, session)
	case PromptGenerateQuestions:
		return generateQuestions(ctx, session, config, logger)
	case PromptSaveReport:
		file := config.ReportFile
		if file == "" {
			file = defaultReportFile
		}
		if err := os.WriteFile(file, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
		logger.Info("report saved", zap.String("filename", file))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func askQuestion(ctx context.Context, session *analysis.Session) error {
	questionPrompt := promptui.Prompt{Label: "Your question"}
	question, err := questionPrompt.Run()
	if err != nil {
		return err
	}

	answer, err := session.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	fmt.Println(answer)
	return nil
}

func generateQuestions(ctx context.Context, session *analysis.Session, config *Config, logger *zap.Logger) error {
	difficultyPrompt := promptui.Select{
		Label: "Difficulty",
		Items: analysis.Difficulties,
	}
	_, difficulty, err := difficultyPrompt.Run()
	if err != nil {
		return err
	}

	countPrompt := promptui.Prompt{
		Label:   "How many questions",
		Default: "5",
		Validate: func(input string) error {
			n, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil || n <= 0 {
				return errors.New("enter a positive number")
			}
			return nil
		},
	}
	countRaw, err := countPrompt.Run()
	if err != nil {
		return err
	}
	count, _ := strconv.Atoi(strings.TrimSpace(countRaw))

	return runQuestionGeneration(ctx, os.Stdout, session, config, difficulty, count, logger)
}

// runQuestionGeneration produces and saves the questions. A missing analysis
// is not an error for the menu loop: the user gets the guidance message, as
// with Ask.
func runQuestionGeneration(ctx context.Context, out io.Writer, session *analysis.Session, config *Config, difficulty string, count int, logger *zap.Logger) error {
	questions, err := session.GenerateQuestions(ctx, analysis.QuestionTypes, difficulty, count)
	if err != nil {
		if errors.Is(err, analysis.ErrNoAnalysis) {
			fmt.Fprintln(out, analysis.GuidanceMessage)
			return nil
		}
		return fmt.Errorf("generating questions: %w", err)
	}

	if len(questions) == 0 {
		logger.Warn("no questions could be generated")
		return nil
	}

	rendered := report.Questions(difficulty, analysis.QuestionTypes, questions)
	fmt.Fprintln(out, rendered)

	file := config.QuestionsFile
	if file == "" {
		file = defaultQuestionsFile
	}
	if err := os.WriteFile(file, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("saving questions: %w", err)
	}
	logger.Info("questions saved", zap.String("filename", file))

	return nil
}

// buildRequest resolves the skill source. An explicit role takes the skills
// from the catalogue; otherwise the job description file is used.
func buildRequest(cmd *cobra.Command, logger *zap.Logger) (analysis.AnalyzeRequest, error) {
	req := analysis.AnalyzeRequest{
		ResumePath:         cmd.Flag("resume").Value.String(),
		JobDescriptionPath: cmd.Flag("jd").Value.String(),
	}

	role := cmd.Flag("role").Value.String()
	if role != "" {
		roles, err := analysis.RolesFromConfig(viper.Get("roles"))
		if err != nil {
			return req, err
		}

		skills, ok := roles[role]
		if !ok {
			return req, fmt.Errorf("unknown role %q, available roles: %s",
				role, strings.Join(analysis.RoleNames(roles), ", "))
		}
		req.RoleSkills = skills
	}

	if len(req.RoleSkills) == 0 && req.JobDescriptionPath == "" {
		return req, errors.New("either --role or --jd is required")
	}

	logger.Info("analysis inputs resolved",
		zap.String("resume", req.ResumePath),
		zap.String("role", role),
		zap.Int("skills", len(req.RoleSkills)),
	)

	return req, nil
}

func newSession(ctx context.Context, config *Config, logger *zap.Logger) (*analysis.Session, error) {
	geminiCfg := &GeminiConfig{}
	if config.AI != nil && config.AI.Gemini != nil {
		geminiCfg = config.AI.Gemini
	}

	if config.AI != nil {
		provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
		if provider != "" && provider != "gemini" {
			return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
		}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: geminiCfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set GEMINI_API_KEY, ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	client, err := gemini.NewClient(ctx, gemini.Config{
		APIKey:         apiKey,
		Model:          geminiCfg.Model,
		EmbeddingModel: geminiCfg.EmbeddingModel,
		Temperature:    geminiCfg.Temperature,
		MaxRetries:     geminiCfg.MaxRetries,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building gemini client: %w", err)
	}

	opts := analysis.Options{
		CutoffScore: viper.GetInt("cutoff-score"),
	}
	if config.Chunking != nil {
		opts.ChunkSize = config.Chunking.Size
		opts.ChunkOverlap = config.Chunking.Overlap
	}
	if geminiCfg.RequestTimeout != "" {
		timeout, err := time.ParseDuration(geminiCfg.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing ai.gemini.request-timeout: %w", err)
		}
		opts.RequestTimeout = timeout
	}

	extractor := document.NewExtractor(logger)

	return analysis.NewSession(client, client, extractor, opts, logger), nil
}
