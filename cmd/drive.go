package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/basepage"
	"github.com/xkilldash9x/basepage/cdp"
	"github.com/xkilldash9x/basepage/internal/config"
	"github.com/xkilldash9x/basepage/internal/observability"
)

// step is one parsed element action from the command line.
type step struct {
	op       string
	selector string
	value    string
}

// parseStep parses "op:selector" or "op:selector=value" (for type and
// select). Selectors are CSS.
func parseStep(raw string) (step, error) {
	op, rest, ok := strings.Cut(raw, ":")
	if !ok || rest == "" {
		return step{}, fmt.Errorf("step %q: expected op:selector", raw)
	}
	s := step{op: op, selector: rest}
	switch op {
	case "type", "select":
		sel, val, ok := strings.Cut(rest, "=")
		if !ok || sel == "" {
			return step{}, fmt.Errorf("step %q: %s needs selector=value", raw, op)
		}
		s.selector, s.value = sel, val
	case "click", "read", "wait", "gone", "hover", "scroll":
	default:
		return step{}, fmt.Errorf("step %q: unknown op %q", raw, op)
	}
	return s, nil
}

func runStep(ctx context.Context, out io.Writer, page *basepage.Page, s step) error {
	loc := basepage.Locator{Strategy: basepage.ByCSS, Selector: s.selector}
	switch s.op {
	case "wait":
		_, err := page.VisibleElement(ctx, loc)
		return err
	case "gone":
		return page.WaitUntilGone(ctx, loc)
	case "click":
		return page.Click(ctx, loc)
	case "type":
		return page.EnterText(ctx, loc, s.value, basepage.WithClear())
	case "select":
		return page.SelectByValue(ctx, loc, s.value)
	case "read":
		text, err := page.Text(ctx, loc)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	case "hover":
		_, err := page.Hover(ctx, loc)
		return err
	case "scroll":
		return page.ScrollIntoView(ctx, loc)
	default:
		return fmt.Errorf("unknown op %q", s.op)
	}
}

// newDriveCmd creates and configures the `drive` command.
func newDriveCmd() *cobra.Command {
	driveCmd := &cobra.Command{
		Use:   "drive <url> [steps...]",
		Short: "Opens a page and runs element action steps against it",
		Long: `Drive opens the given URL in a headless browser and applies each step
in order. A step is op:selector, or op:selector=value for type and select.

Supported ops:
  wait    wait for the element to be visible
  gone    wait for the element to disappear
  click   click the element
  type    clear the element and type a value    (type:#user=admin)
  select  set a select element's value          (select:#lang=en)
  read    print the element's text to stdout
  hover   move the pointer onto the element
  scroll  scroll the element into view

Example:
  basepage drive example.com wait:#login type:#user=admin type:#pass=hunter2 click:#submit read:.banner`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("failed to unmarshal config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			url := args[0]
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				url = "https://" + url
			}

			steps := make([]step, 0, len(args)-1)
			for _, raw := range args[1:] {
				s, err := parseStep(raw)
				if err != nil {
					return err
				}
				steps = append(steps, s)
			}

			runID := uuid.New().String()
			logger.Info("Starting drive",
				zap.String("runID", runID),
				zap.String("url", url),
				zap.Int("steps", len(steps)),
			)

			allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", cfg.Browser.Headless),
			)
			if cfg.Browser.DisableCache {
				allocOpts = append(allocOpts, chromedp.Flag("disable-cache", true))
			}
			if cfg.Browser.IgnoreTLSErrors {
				allocOpts = append(allocOpts, chromedp.Flag("ignore-certificate-errors", true))
			}
			for _, raw := range cfg.Browser.Args {
				name, value, ok := strings.Cut(strings.TrimPrefix(raw, "--"), "=")
				if ok {
					allocOpts = append(allocOpts, chromedp.Flag(name, value))
				} else {
					allocOpts = append(allocOpts, chromedp.Flag(name, true))
				}
			}
			if w, h := cfg.Browser.Viewport["width"], cfg.Browser.Viewport["height"]; w > 0 && h > 0 {
				allocOpts = append(allocOpts, chromedp.WindowSize(w, h))
			}

			allocCtx, cancelAlloc := chromedp.NewExecAllocator(cmd.Context(), allocOpts...)
			defer cancelAlloc()
			browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
				chromedp.WithLogf(logger.Sugar().Debugf))
			defer cancelBrowser()

			driver := cdp.New(cdp.WithLogger(logger))
			page := basepage.New(driver,
				basepage.WithLogger(logger),
				basepage.WithDefaultTimeout(cfg.Wait.Timeout),
				basepage.WithDefaultPoll(cfg.Wait.Poll),
			)

			navCtx, cancelNav := context.WithTimeout(browserCtx, cfg.Browser.NavigationTimeout)
			defer cancelNav()
			if err := driver.Navigate(navCtx, url); err != nil {
				return err
			}

			for i, s := range steps {
				if err := runStep(browserCtx, cmd.OutOrStdout(), page, s); err != nil {
					return fmt.Errorf("step %d (%s:%s): %w", i+1, s.op, s.selector, err)
				}
				logger.Debug("Step complete",
					zap.Int("step", i+1),
					zap.String("op", s.op),
					zap.String("selector", s.selector),
				)
			}

			logger.Info("Drive complete", zap.String("runID", runID))
			return nil
		},
	}
	return driveCmd
}
