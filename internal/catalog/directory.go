package catalog

import (
	"github.com/litescript/ls-orrery/internal/audio"
)

// Fallback is shown when a body has no descriptive text.
const Fallback = "Aucune information disponible."

// Entry pairs a body's descriptive markup with its audio cue.
type Entry struct {
	Name   string
	Markup string
	Audio  audio.Resource // nil when the body has no cue
}

// ToneFunc builds the audio cue for a body.
type ToneFunc func(b Body) audio.Resource

// Directory maps body names to entries. It is read-only after construction
// and implements audio.Source.
type Directory struct {
	entries map[string]Entry
	order   []string
}

// NewDirectory builds the directory from the body table and the static
// texts. toneFor is called for every body with text and a tone pitch; nil
// disables audio.
func NewDirectory(toneFor ToneFunc) *Directory {
	d := &Directory{entries: make(map[string]Entry)}
	for _, b := range Bodies {
		markup, ok := infoText[b.Name]
		if !ok {
			continue
		}
		e := Entry{Name: b.Name, Markup: markup}
		if toneFor != nil && b.ToneHz > 0 {
			e.Audio = toneFor(b)
		}
		d.entries[b.Name] = e
		d.order = append(d.order, b.Name)
	}
	return d
}

// Lookup returns the entry for name.
func (d *Directory) Lookup(name string) (Entry, bool) {
	e, ok := d.entries[name]
	return e, ok
}

// Describe returns the markup for name, or Fallback on a miss.
func (d *Directory) Describe(name string) string {
	if e, ok := d.entries[name]; ok && e.Markup != "" {
		return e.Markup
	}
	return Fallback
}

// Names returns the names with entries, in body table order.
func (d *Directory) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Audio implements audio.Source.
func (d *Directory) Audio(name string) (audio.Resource, bool) {
	e, ok := d.entries[name]
	if !ok || e.Audio == nil {
		return nil, false
	}
	return e.Audio, true
}

// AllAudio implements audio.Source.
func (d *Directory) AllAudio() []audio.Resource {
	var out []audio.Resource
	for _, name := range d.order {
		if a := d.entries[name].Audio; a != nil {
			out = append(out, a)
		}
	}
	return out
}

var infoText = map[string]string{
	"Soleil": "Étoile naine jaune au centre du système solaire.\n" +
		"Elle concentre 99,8 % de la masse du système.\n" +
		"Température de surface : environ 5 500 °C.",
	"Mercure": "Planète la plus proche du Soleil et la plus petite.\n" +
		"Sans véritable atmosphère, elle passe de -180 °C à 430 °C.\n" +
		"Une année y dure 88 jours terrestres.",
	"Vénus": "Deuxième planète, enveloppée d'une épaisse atmosphère de CO₂.\n" +
		"Effet de serre extrême : près de 465 °C en surface.\n" +
		"Elle tourne sur elle-même dans le sens rétrograde.",
	"Terre": "Notre planète, la seule connue pour abriter la vie.\n" +
		"71 % de sa surface est couverte d'océans.\n" +
		"Un satellite naturel : la Lune.",
	"Mars": "La planète rouge, colorée par l'oxyde de fer.\n" +
		"Elle abrite Olympus Mons, le plus haut volcan connu.\n" +
		"Deux petites lunes : Phobos et Deimos.",
	"Jupiter": "La plus grande planète, une géante gazeuse.\n" +
		"Sa Grande Tache rouge est une tempête séculaire.\n" +
		"Quatre lunes galiléennes : Io, Europe, Ganymède, Callisto.",
	"Saturne": "Géante gazeuse célèbre pour ses anneaux de glace.\n" +
		"Sa densité est inférieure à celle de l'eau.\n" +
		"Titan, sa plus grande lune, possède une atmosphère épaisse.",
	"Uranus": "Géante de glace qui tourne couchée sur le côté.\n" +
		"Son axe est incliné de 98°.\n" +
		"Le méthane lui donne sa teinte bleu-vert.",
	"Neptune": "Planète la plus lointaine, géante de glace.\n" +
		"Elle connaît les vents les plus rapides du système solaire.\n" +
		"Une année y dure 165 années terrestres.",
}
