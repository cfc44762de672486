package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.userEmail != "" {
		s = a.userEmail
	}
	if agg := a.resumeService.Current(); agg != nil {
		s = fmt.Sprintf("%s %q", s, agg.Title)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to ResumeCraft CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
