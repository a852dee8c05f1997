package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/celadon-tui/celadon"
)

const demoRules = `
Tower#demo:
    frame: rounded
    alignment: [center, start]
    gap: 1

    "> Row":
        height: 1
        gap: 2
        alignment: [center, center]

Text.title:
    content_style: bold main.primary

Button#quit:
    groups: [error]
`

func newDemoCmd() *cobra.Command {
	var (
		rulesPath string
		fps       int
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a sample application",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			app, err := celadon.NewApplication("celadon", celadon.WithFrameRate(fps), celadon.WithLogger(logger))
			if err != nil {
				return err
			}
			if err := app.LoadRules(demoRules); err != nil {
				return fmt.Errorf("demo rules: %w", err)
			}
			if rulesPath != "" {
				rules, err := celadon.LoadRulesFile(rulesPath)
				if err != nil {
					return err
				}
				if err := app.AddRules(rules); err != nil {
					return err
				}
				logger.Debug("loaded rules", "file", rulesPath, "count", len(rules))
			}

			home, err := celadon.NewPage(nil, celadon.WithRoute("/"), celadon.WithBuilder(func(p *celadon.Page) error {
				buildHome(app, p)
				return nil
			}))
			if err != nil {
				return err
			}
			about, err := celadon.NewPage(nil, celadon.WithRoute("/about"), celadon.WithTitle("About"),
				celadon.WithBuilder(buildAbout))
			if err != nil {
				return err
			}
			for _, p := range []*celadon.Page{home, about} {
				if err := app.AddPage(p); err != nil {
					return err
				}
			}

			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&rulesPath, "rules", "", "YAML or TOML rule file applied on top of the demo rules")
	cmd.Flags().IntVar(&fps, "fps", 60, "target frame rate")
	return cmd
}

func buildHome(app *celadon.Application, p *celadon.Page) {
	tower := celadon.NewTower(celadon.WithID("demo"))
	count := 0
	status := celadon.NewText("pressed 0 times")

	press := celadon.NewButton("Press")
	press.OnSubmit.Subscribe(func(*celadon.Button) bool {
		count++
		status.SetContent(fmt.Sprintf("pressed %d times", count))
		return true
	})
	quit := celadon.NewButton("Quit", celadon.WithID("quit"))
	quit.OnSubmit.Subscribe(func(*celadon.Button) bool {
		app.Pin(confirmQuit(app))
		return true
	})

	level := celadon.NewText("level 0.50")
	progress := celadon.NewProgress(0.5, celadon.WithWidth(celadon.Fixed(30)))
	slider := celadon.NewSlider(celadon.WithWidth(celadon.Fixed(30)))
	slider.SetValue(0.5)
	slider.OnChange.Subscribe(func(v float64) bool {
		level.SetContent(fmt.Sprintf("level %.2f", v))
		progress.SetValue(v)
		return true
	})

	name := celadon.NewField("", celadon.WithWidth(celadon.Fixed(30)))
	name.SetPlaceholder("your name")
	name.OnSubmit.Subscribe(func(v string) bool {
		status.SetContent(fmt.Sprintf("hello %s", v))
		return true
	})

	border := celadon.NewDropdown("border", []string{"rounded", "double", "heavy"})
	border.OnChange.Subscribe(func(v string) bool {
		if v == "border" {
			return true
		}
		if _, err := app.Rule("Tower#demo", map[string]any{"frame": v}); err != nil {
			app.ReportError(err)
			return false
		}
		return true
	})

	fps := celadon.NewText("fps --")
	app.Watch(celadon.Every(time.Second, func() {
		fps.SetContent(fmt.Sprintf("fps %.0f", app.FPS()))
	}))

	frameless := celadon.NewCheckbox("frameless")
	frameless.OnChange.Subscribe(func(checked bool) bool {
		if checked {
			tower.SetFrame(celadon.Frame{})
		} else {
			frame, _ := celadon.GetFrame("rounded")
			tower.SetFrame(frame)
		}
		return true
	})

	buttons := celadon.NewRow()
	buttons.AddChild(press, quit)

	tower.AddChild(
		celadon.NewNav(app),
		celadon.NewText("celadon demo", celadon.WithGroups("title")),
		celadon.NewText("tab moves the selection, return presses, ~/about opens the about page"),
		buttons,
		status,
		name,
		slider,
		progress,
		level,
		border,
		frameless,
		fps,
	)
	p.AddChild(tower)
}

// confirmQuit asks before stopping the application.
func confirmQuit(app *celadon.Application) *celadon.Dialogue {
	yes := celadon.NewButton("Quit", celadon.WithGroups("error"))
	no := celadon.NewButton("Stay")
	choices := celadon.NewRow(celadon.WithGroups("input"))
	choices.AddChild(yes, no)

	dialogue := celadon.NewDialogue([]celadon.Widget{
		celadon.NewText("Quit celadon?", celadon.WithGroups("title")),
		celadon.NewText("The demo stops and the terminal is restored.", celadon.WithGroups("body")),
		choices,
	})
	yes.OnSubmit.Subscribe(func(*celadon.Button) bool {
		app.Stop()
		return true
	})
	no.OnSubmit.Subscribe(func(*celadon.Button) bool {
		app.Unpin(dialogue)
		return true
	})
	return dialogue
}

func buildAbout(p *celadon.Page) error {
	tower := celadon.NewTower(celadon.WithID("demo"))
	tower.AddChild(
		celadon.NewText("celadon styles widgets with selector rules", celadon.WithGroups("title")),
		celadon.NewText("click ~/ to go back"),
	)
	p.AddChild(tower)
	return nil
}
