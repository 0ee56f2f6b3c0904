package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/cozyhearth-go/internal/application/simulation/commands"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/events"
	"github.com/andrescamacho/cozyhearth-go/internal/domain/interaction"
)

// NewInteractCommand creates the interact command
func NewInteractCommand() *cobra.Command {
	var topic string

	cmd := &cobra.Command{
		Use:   "interact <object|npc> <target> <interaction>",
		Short: "Interact with an object or a guest",
		Long: `Queue an interaction and play it through to the end.

Objects: hearth (examine, tend), workbench (examine, craft),
garden (examine, water, harvest). Guests: traveler (dialog, serve),
merchant (dialog, trade).

Examples:
  cozyhearth interact object hearth tend
  cozyhearth interact npc merchant dialog --topic weather`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := openSession(ctx, sessionOptions{})
			if err != nil {
				return err
			}
			defer s.Close()

			unsubscribe := s.engine.Subscribe(events.ListenerFunc(func(ev events.Event) {
				switch data := ev.Data.(type) {
				case events.DialogueData:
					fmt.Printf("%s: %q\n", data.NPCID, data.Line)
				case events.InteractionData:
					if ev.Type == events.EventTypeInteractionStarted && data.Returning {
						fmt.Printf("(you have been here before)\n")
					}
				}
			}))
			defer unsubscribe()

			var options map[string]string
			if topic != "" {
				options = map[string]string{"topic": topic}
			}

			dwell := s.cfg.Interaction.Dwell
			if dwell <= 0 {
				dwell = interaction.DefaultDwell
			}

			err = saveAfter(ctx, s, func() error {
				if _, err := send[*commands.QueueInteractionResponse](ctx, s.mediator, &commands.QueueInteractionCommand{
					Kind:            args[0],
					TargetID:        args[1],
					InteractionType: args[2],
					Options:         options,
				}); err != nil {
					return err
				}
				// One tick starts the interaction, the dwell ends it
				_, err := send[*commands.AdvanceTimeResponse](ctx, s.mediator, &commands.AdvanceTimeCommand{
					Duration:  dwell + commands.DefaultAdvanceStep,
					HoldClock: true,
				})
				return err
			})
			if err != nil {
				return err
			}

			fmt.Printf("Finished %s %s\n", args[2], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Dialogue topic for guests")

	return cmd
}
