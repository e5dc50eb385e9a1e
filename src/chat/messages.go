package chat

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	helpMessage = "Puedes hacer preguntas sobre el clima actual en la ciudad que desees.\n" +
		"También puedes hacer más de una pregunta o incluir varias ciudades en la misma pregunta.\n" +
		"Estos son los temas de los que podré responder según mi entrenamiento: " +
		"'Tiempo actual', 'Clima actual', 'Día y noche', 'Luna y estación', 'Geolocalización'."

	errorMessage = "Lo siento, ocurrió un error al procesar tu mensaje."
	usageMessage = "Escribe tu pregunta después del comando, por ejemplo: /clima ¿Qué temperatura hace en Lima?"
)

func welcomeMessage(userID string) string {
	return fmt.Sprintf("Hola <@%s>! Hazme una pregunta sobre el clima de algún lugar. "+
		"Si tienes dudas, puedes usar el comando /ayuda.", userID)
}

var mentionRegex = regexp.MustCompile(`<@[A-Z0-9]+(\|[^>]*)?>`)

// stripMention removes user mentions so only the question reaches the pipeline.
func stripMention(text string) string {
	return strings.TrimSpace(mentionRegex.ReplaceAllString(text, ""))
}
