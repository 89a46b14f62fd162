package locale

var builtins = map[string]Values{
	"en-US": {
		Name:                "en-US",
		Months:              []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		MonthsShort:         []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Weekdays:            []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		WeekdaysShort:       []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		WeekdaysNarrow:      []string{"S", "M", "T", "W", "T", "F", "S"},
		TimesOfDayUppercase: []string{"AM", "PM"},
		TimesOfDayLowercase: []string{"am", "pm"},
		FirstDayOfWeek:      0,
		Formats: Formats{
			Year:     "yyyy",
			Month:    "MMMM yyyy",
			Date:     "MMMM d, yyyy",
			Datetime: "MMMM d, yyyy h:mm a",
			Time:     "h:mm a",
		},
	},
	"en-GB": {
		Name:                "en-GB",
		Months:              []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		MonthsShort:         []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Weekdays:            []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		WeekdaysShort:       []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		WeekdaysNarrow:      []string{"S", "M", "T", "W", "T", "F", "S"},
		TimesOfDayUppercase: []string{"AM", "PM"},
		TimesOfDayLowercase: []string{"am", "pm"},
		FirstDayOfWeek:      1,
		Formats: Formats{
			Year:     "yyyy",
			Month:    "MMMM yyyy",
			Date:     "d MMMM yyyy",
			Datetime: "d MMMM yyyy HH:mm",
			Time:     "HH:mm",
		},
	},
	"de-DE": {
		Name:                "de-DE",
		Months:              []string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		MonthsShort:         []string{"Jan", "Feb", "Mär", "Apr", "Mai", "Jun", "Jul", "Aug", "Sep", "Okt", "Nov", "Dez"},
		Weekdays:            []string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		WeekdaysShort:       []string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"},
		WeekdaysNarrow:      []string{"S", "M", "D", "M", "D", "F", "S"},
		TimesOfDayUppercase: []string{"AM", "PM"},
		TimesOfDayLowercase: []string{"am", "pm"},
		FirstDayOfWeek:      1,
		Formats: Formats{
			Year:     "yyyy",
			Month:    "MMMM yyyy",
			Date:     "d. MMMM yyyy",
			Datetime: "d. MMMM yyyy HH:mm",
			Time:     "HH:mm",
		},
	},
	"fr-FR": {
		Name:                "fr-FR",
		Months:              []string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		MonthsShort:         []string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."},
		Weekdays:            []string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"},
		WeekdaysShort:       []string{"dim.", "lun.", "mar.", "mer.", "jeu.", "ven.", "sam."},
		WeekdaysNarrow:      []string{"D", "L", "M", "M", "J", "V", "S"},
		TimesOfDayUppercase: []string{"AM", "PM"},
		TimesOfDayLowercase: []string{"am", "pm"},
		FirstDayOfWeek:      1,
		Formats: Formats{
			Year:     "yyyy",
			Month:    "MMMM yyyy",
			Date:     "d MMMM yyyy",
			Datetime: "d MMMM yyyy HH:mm",
			Time:     "HH:mm",
		},
	},
	"es-ES": {
		Name:                "es-ES",
		Months:              []string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		MonthsShort:         []string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"},
		Weekdays:            []string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		WeekdaysShort:       []string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
		WeekdaysNarrow:      []string{"D", "L", "M", "X", "J", "V", "S"},
		TimesOfDayUppercase: []string{"a. m.", "p. m."},
		TimesOfDayLowercase: []string{"a. m.", "p. m."},
		FirstDayOfWeek:      1,
		Formats: Formats{
			Year:     "yyyy",
			Month:    "MMMM 'de' yyyy",
			Date:     "d 'de' MMMM 'de' yyyy",
			Datetime: "d 'de' MMMM 'de' yyyy H:mm",
			Time:     "H:mm",
		},
	},
}
