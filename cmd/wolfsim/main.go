// Command wolfsim plays games between computer players and prints them to the terminal.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/aaronzipp/who-is-the-wolf/internal/game"
	"github.com/aaronzipp/who-is-the-wolf/internal/models"
)

var (
	heading = color.New(color.FgHiCyan, color.Bold).SprintfFunc()
	wolf    = color.New(color.FgHiRed).SprintfFunc()
	sheep   = color.New(color.FgHiGreen).SprintfFunc()
	muted   = color.New(color.FgHiBlack).SprintfFunc()
	winner  = color.New(color.FgHiYellow, color.Bold).SprintfFunc()
)

func main() {
	players := flag.Int("players", game.DefaultCapacity, "seats per game")
	wolves := flag.Int("wolves", game.DefaultMinorityCount, "wolves per game")
	games := flag.Int("games", 1, "number of games to play")
	seed := flag.Uint64("seed", 0, "random seed (0 picks one)")
	quiet := flag.Bool("quiet", false, "only print the tally")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}
	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}

	e := game.NewEngine()
	e.Random = rand.New(rand.NewPCG(*seed, *seed>>32|1))

	tally := map[models.Winner]int{}
	for i := 1; i <= *games; i++ {
		s, err := e.BotGame(*players, *wolves)
		if err != nil {
			fmt.Fprintln(os.Stderr, "wolfsim:", err)
			os.Exit(2)
		}
		tally[s.Winner]++
		if !*quiet {
			printGame(i, s)
		}
	}

	fmt.Println(heading("Tally after %d game(s), seed %d", *games, *seed))
	fmt.Printf("  %s %d\n", sheep("sheep"), tally[models.RoleMajority])
	fmt.Printf("  %s  %d\n", wolf("wolf"), tally[models.RoleMinority])
}

func printGame(n int, s *models.Session) {
	fmt.Println(heading("Game %d: %s vs %s", n, s.WordPair.Majority, s.WordPair.Minority))
	for _, p := range s.Players {
		paint := sheep
		if p.Role == models.RoleMinority {
			paint = wolf
		}
		fmt.Printf("  %-10s %s  %s\n", p.DisplayName, paint("%-5s %-8s", p.Role, p.Word), strings.Join(p.Clues, ", "))
	}

	for _, el := range s.Eliminations {
		p := s.Player(el.UserID)
		paint := sheep
		if p.Role == models.RoleMinority {
			paint = wolf
		}
		fmt.Printf("  round %d: %s eliminated %s\n", el.Round, paint(p.DisplayName), muted("(%d votes)", el.Votes))
	}
	fmt.Printf("  %s\n\n", winner("%s win", s.Winner))
}
