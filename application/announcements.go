package application

import (
	"fmt"

	"housie/domain/entities"
)

// Announcement texts are kept in Portuguese, matching the table's live
// narration.

func welcomeAnnouncement(p entities.Prizes) string {
	return fmt.Sprintf(
		"Atenção! Mesa trancada. Bem-vindos a mais uma rodada! Os prêmios de hoje são: R$ %.2f para Quadra, R$ %.2f para Linha e R$ %.2f para o grande Bingo! Boa sorte a todos!",
		p.Quadra, p.Linha, p.Bingo,
	)
}

// ballAnnouncement prefixes the ball with its B-I-N-G-O column letter.
func ballAnnouncement(ball int) string {
	var prefix string
	switch {
	case ball <= 15:
		prefix = "B"
	case ball <= 30:
		prefix = "I"
	case ball <= 45:
		prefix = "N"
	case ball <= 60:
		prefix = "G"
	default:
		prefix = "O"
	}
	return fmt.Sprintf("%s %d", prefix, ball)
}

func winnerAnnouncement(w *entities.Winner) string {
	return fmt.Sprintf(
		"BINGO! Temos um ganhador para %s! Meus parabéns %s! Conferindo a cartela vencedora.",
		w.Tier, w.Name,
	)
}

func proximityAnnouncement(minutes int) string {
	if minutes == 1 {
		return "Atenção jogadores! Falta apenas um minuto para o início da nossa próxima mesa. Garante já suas cartelas!"
	}
	return fmt.Sprintf("Atenção! Faltam %d minutos para o início do próximo sorteio!", minutes)
}
