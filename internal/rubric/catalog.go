// Package rubric holds the static indicator catalog. Printed layouts
// encode specific row positions, so section titles, indicator ordering
// and counts are fixed here and must not be edited casually.
package rubric

import "github.com/noah-isme/boleta-api/internal/models"

// Indicator is a single gradable statement.
type Indicator struct {
	Text string `json:"text"`
}

// Section groups indicators sharing one rubric table.
type Section struct {
	Title              string      `json:"title"`
	Indicators         []Indicator `json:"indicators"`
	HasRecommendations bool        `json:"has_recommendations"`
}

// Entry is the full catalog row for one academic level.
type Entry struct {
	Level    models.AcademicLevel `json:"level"`
	Sections []Section            `json:"sections"`
}

// Lookup returns the catalog entry for a level.
func Lookup(level models.AcademicLevel) (*Entry, bool) {
	entry, ok := catalog[level]
	return entry, ok
}

// HasIndicator reports whether the section/indicator pair exists for the
// level. Marks referencing unknown indices are ignored on render, never
// an error.
func HasIndicator(level models.AcademicLevel, sectionIdx, indicatorIdx int) bool {
	entry, ok := catalog[level]
	if !ok {
		return false
	}
	if sectionIdx < 0 || sectionIdx >= len(entry.Sections) {
		return false
	}
	return indicatorIdx >= 0 && indicatorIdx < len(entry.Sections[sectionIdx].Indicators)
}

var catalog = map[models.AcademicLevel]*Entry{
	models.LevelSala1: {
		Level: models.LevelSala1,
		Sections: []Section{
			{
				Title: "Formación Personal y Social",
				Indicators: []Indicator{
					{Text: "Reconoce su nombre y responde cuando se le llama"},
					{Text: "Se integra progresivamente a la rutina diaria del aula"},
					{Text: "Expresa emociones básicas con gestos y palabras sencillas"},
					{Text: "Explora los espacios del aula con seguridad"},
					{Text: "Acepta la compañía de otros niños en el juego"},
				},
			},
			{
				Title:              "Relación con el Ambiente y Comunicación",
				HasRecommendations: true,
				Indicators: []Indicator{
					{Text: "Manipula objetos de distintas texturas, formas y tamaños"},
					{Text: "Imita sonidos y movimientos de su entorno"},
					{Text: "Señala imágenes conocidas en cuentos y láminas"},
					{Text: "Responde a canciones y rondas con movimiento corporal"},
					{Text: "Utiliza palabras sueltas para pedir lo que desea"},
				},
			},
		},
	},
	models.LevelSala2: {
		Level: models.LevelSala2,
		Sections: []Section{
			{
				Title: "Formación Personal y Social",
				Indicators: []Indicator{
					{Text: "Dice su nombre y el de sus compañeros más cercanos"},
					{Text: "Practica hábitos de higiene con ayuda del adulto"},
					{Text: "Comparte materiales durante el juego dirigido"},
					{Text: "Sigue instrucciones sencillas de la rutina diaria"},
					{Text: "Manifiesta sus preferencias al escoger actividades"},
				},
			},
			{
				Title:              "Relación con el Ambiente y Comunicación",
				HasRecommendations: true,
				Indicators: []Indicator{
					{Text: "Agrupa objetos por color y tamaño"},
					{Text: "Nombra animales y plantas de su entorno cercano"},
					{Text: "Narra experiencias cortas con frases de dos o tres palabras"},
					{Text: "Garabatea con intención sobre distintos soportes"},
					{Text: "Escucha cuentos cortos manteniendo la atención"},
				},
			},
		},
	},
	models.LevelSala3: {
		Level: models.LevelSala3,
		Sections: []Section{
			{
				Title: "Formación Personal y Social",
				Indicators: []Indicator{
					{Text: "Se identifica con su nombre completo y edad"},
					{Text: "Practica normas de cortesía en el aula"},
					{Text: "Resuelve pequeños conflictos con mediación del adulto"},
					{Text: "Asume responsabilidades sencillas dentro del aula"},
					{Text: "Controla esfínteres y atiende su aseo personal"},
				},
			},
			{
				Title:              "Relación con el Ambiente y Comunicación",
				HasRecommendations: true,
				Indicators: []Indicator{
					{Text: "Cuenta oralmente hasta diez señalando objetos"},
					{Text: "Clasifica objetos atendiendo a dos atributos"},
					{Text: "Describe láminas usando oraciones completas"},
					{Text: "Reconoce la inicial de su nombre en textos del aula"},
					{Text: "Dibuja la figura humana con sus partes principales"},
				},
			},
		},
	},
	models.LevelPrimerGrado: {
		Level: models.LevelPrimerGrado,
		Sections: []Section{
			{
				Title: "Lengua y Comunicación",
				Indicators: []Indicator{
					{Text: "Lee palabras y oraciones sencillas con apoyo de imágenes"},
					{Text: "Escribe su nombre y palabras del vocabulario trabajado"},
					{Text: "Comprende instrucciones orales de dos pasos"},
					{Text: "Participa en conversaciones respetando el turno de habla"},
					{Text: "Copia textos cortos respetando la direccionalidad"},
				},
			},
			{
				Title: "Matemática",
				Indicators: []Indicator{
					{Text: "Cuenta, lee y escribe números hasta el 100"},
					{Text: "Resuelve adiciones y sustracciones sencillas sin reagrupar"},
					{Text: "Identifica figuras geométricas básicas en su entorno"},
					{Text: "Ordena colecciones de mayor a menor y viceversa"},
				},
			},
			{
				Title: "Ciencias y Convivencia",
				Indicators: []Indicator{
					{Text: "Identifica las partes del cuerpo y sus cuidados"},
					{Text: "Distingue seres vivos de elementos no vivos"},
					{Text: "Practica normas de convivencia en el aula y el recreo"},
					{Text: "Reconoce los símbolos patrios"},
				},
			},
		},
	},
	models.LevelSegundoGrado: {
		Level: models.LevelSegundoGrado,
		Sections: []Section{
			{
				Title: "Lengua y Comunicación",
				Indicators: []Indicator{
					{Text: "Lee textos cortos con fluidez y entonación adecuada"},
					{Text: "Escribe oraciones con concordancia de género y número"},
					{Text: "Identifica personajes y secuencia en narraciones leídas"},
					{Text: "Usa mayúsculas y punto final en sus producciones"},
					{Text: "Expone oralmente experiencias con orden lógico"},
				},
			},
			{
				Title: "Matemática",
				Indicators: []Indicator{
					{Text: "Lee, escribe y compara números hasta el 1.000"},
					{Text: "Resuelve adiciones y sustracciones con reagrupación"},
					{Text: "Inicia la construcción de las tablas de multiplicar"},
					{Text: "Mide longitudes usando unidades convencionales"},
				},
			},
			{
				Title: "Ciencias y Convivencia",
				Indicators: []Indicator{
					{Text: "Describe los cambios del tiempo atmosférico"},
					{Text: "Clasifica alimentos según su origen"},
					{Text: "Colabora en el orden y limpieza de los espacios comunes"},
					{Text: "Valora el trabajo de su familia y su comunidad"},
				},
			},
		},
	},
	models.LevelTercerGrado: {
		Level: models.LevelTercerGrado,
		Sections: []Section{
			{
				Title: "Lengua y Comunicación",
				Indicators: []Indicator{
					{Text: "Comprende textos narrativos e informativos breves"},
					{Text: "Produce textos escritos de tres o más párrafos"},
					{Text: "Aplica normas ortográficas trabajadas en el aula"},
					{Text: "Consulta el diccionario para ampliar su vocabulario"},
					{Text: "Argumenta opiniones propias en discusiones guiadas"},
				},
			},
			{
				Title: "Matemática",
				Indicators: []Indicator{
					{Text: "Domina las tablas de multiplicar hasta el 10"},
					{Text: "Resuelve multiplicaciones por una y dos cifras"},
					{Text: "Inicia la división con divisores de una cifra"},
					{Text: "Interpreta datos sencillos en tablas y gráficos"},
				},
			},
			{
				Title: "Ciencias y Convivencia",
				Indicators: []Indicator{
					{Text: "Explica el ciclo del agua con sus propias palabras"},
					{Text: "Identifica los estados de la materia"},
					{Text: "Participa en proyectos de cuidado del ambiente escolar"},
					{Text: "Reconoce deberes y derechos del niño"},
				},
			},
		},
	},
	models.LevelCuartoGrado: {
		Level: models.LevelCuartoGrado,
		Sections: []Section{
			{
				Title: "Lengua y Comunicación",
				Indicators: []Indicator{
					{Text: "Analiza textos identificando idea principal y secundarias"},
					{Text: "Redacta descripciones y narraciones coherentes"},
					{Text: "Aplica reglas de acentuación en palabras de uso frecuente"},
					{Text: "Diferencia sustantivos, adjetivos y verbos en oraciones"},
					{Text: "Prepara y presenta exposiciones orales breves"},
				},
			},
			{
				Title: "Matemática",
				Indicators: []Indicator{
					{Text: "Opera con números naturales hasta seis cifras"},
					{Text: "Resuelve divisiones con divisores de dos cifras"},
					{Text: "Representa y compara fracciones sencillas"},
					{Text: "Calcula perímetros de figuras planas"},
				},
			},
			{
				Title: "Ciencias y Convivencia",
				Indicators: []Indicator{
					{Text: "Describe los sistemas del cuerpo humano estudiados"},
					{Text: "Explica cadenas alimentarias de ecosistemas locales"},
					{Text: "Ubica en el mapa las regiones de Venezuela"},
					{Text: "Practica la resolución pacífica de conflictos"},
				},
			},
		},
	},
	models.LevelQuintoGrado: {
		Level: models.LevelQuintoGrado,
		Sections: []Section{
			{
				Title: "Lengua y Comunicación",
				Indicators: []Indicator{
					{Text: "Interpreta textos literarios y de divulgación científica"},
					{Text: "Produce textos argumentativos con estructura clara"},
					{Text: "Reconoce oraciones simples y compuestas"},
					{Text: "Emplea conectores para hilar párrafos"},
					{Text: "Investiga en fuentes variadas y cita lo consultado"},
				},
			},
			{
				Title: "Matemática",
				Indicators: []Indicator{
					{Text: "Opera con fracciones y números decimales"},
					{Text: "Calcula porcentajes en situaciones cotidianas"},
					{Text: "Resuelve problemas de área y perímetro"},
					{Text: "Interpreta y construye gráficos de barras y líneas"},
				},
			},
			{
				Title: "Ciencias y Convivencia",
				Indicators: []Indicator{
					{Text: "Explica fenómenos del sistema solar"},
					{Text: "Clasifica mezclas y métodos de separación"},
					{Text: "Analiza hechos de la historia venezolana estudiados"},
					{Text: "Promueve acciones de conservación ambiental"},
				},
			},
		},
	},
	models.LevelSextoGrado: {
		Level: models.LevelSextoGrado,
		Sections: []Section{
			{
				Title: "Lengua y Comunicación",
				Indicators: []Indicator{
					{Text: "Analiza críticamente textos continuos y discontinuos"},
					{Text: "Redacta ensayos breves con introducción, desarrollo y cierre"},
					{Text: "Domina la ortografía de palabras de uso académico"},
					{Text: "Debate con argumentos respetando posiciones contrarias"},
					{Text: "Elabora resúmenes y esquemas de lo leído"},
				},
			},
			{
				Title: "Matemática",
				Indicators: []Indicator{
					{Text: "Resuelve operaciones combinadas con números racionales"},
					{Text: "Aplica proporcionalidad y regla de tres simple"},
					{Text: "Calcula áreas y volúmenes de cuerpos geométricos"},
					{Text: "Resuelve problemas de estadística y probabilidad elemental"},
				},
			},
			{
				Title: "Ciencias y Convivencia",
				Indicators: []Indicator{
					{Text: "Explica procesos de energía y sus transformaciones"},
					{Text: "Relaciona causas y consecuencias de la independencia"},
					{Text: "Analiza problemas ambientales globales y locales"},
					{Text: "Ejerce liderazgo positivo en actividades escolares"},
				},
			},
		},
	},
}
