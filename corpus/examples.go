package corpus

// examples holds the static training phrases. Phrases carry dialectal variants
// and common speech-recognition slips on purpose.
var examples = map[Label][]string{
	Memorizar: {
		"memoriza que la clave es 777", "guarda esto: dato importante",
		"recuerda que mañana tengo cita", "anota el código ABC123",
		"no olvides que el wifi es password123", "apunta que debo llamar a Juan",
		"registra que el proyecto se entrega el viernes", "toma nota de que María llamó",
		"anota mi número de cuenta 12345", "guarda mi dirección calle 123",
		"apúntale que tengo junta a las 3", "no se te olvide que debo pagar la luz",
		"acuérdate que hoy es cumpleaños de mi mamá", "anótale que necesito comprar leche",
		"memoriza qué la clave es 777", "memoriza está clave es 777", "guarda está información",
		"memoriza qué tengo cita", "memoriza clave es 777", "guarda dato importante",
		"anota código ABC", "almacena que la reunión es mañana", "graba que el password es 123",
		"registra mi cumpleaños es el 15",
	},
	VolumenSubir: {
		"sube el volumen", "súbele volumen", "más alto", "aumenta el sonido", "volumen arriba",
		"subir volumen", "sube volumen", "súbele", "ponle más recio", "échale más volumen",
		"métele más", "dale más duro", "ponlo más fuerte", "subele volumen", "no te escucho sube",
		"volumen al máximo", "ponlo al 100", "aumenta audio", "más duro", "más fuerte",
		"volumen alto",
	},
	VolumenBajar: {
		"baja el volumen", "bájale volumen", "más bajo", "disminuye el sonido", "volumen abajo",
		"bajar volumen", "baja volumen", "bájale", "ponle más bajito", "échale menos volumen",
		"quítale volumen", "bájale tantito", "bajale volumen", "está muy alto baja",
		"volumen al mínimo", "ponlo bajito", "disminuye audio", "menos fuerte", "más suave",
	},
	Silencio: {
		"silencio", "mute", "cállate", "silencia", "mutea", "quita el sonido", "sin sonido",
		"apaga el audio", "quita audio", "calla", "shh", "silencio total", "mutear", "pon mute",
	},
	AbrirApp: {
		"abre chrome", "abrir chrome", "abre google chrome", "abre firefox", "abre edge",
		"abre visual studio code", "abrir vscode", "abre vs code", "abre notepad",
		"abre bloc de notas", "abre word", "abre excel", "abre discord", "abrir discord",
		"abre whatsapp", "abre telegram", "abre slack", "abre spotify", "abrir spotify", "abre vlc",
		"lanza chrome", "ejecuta notepad", "inicia discord", "arranca spotify",
	},
	BuscarWeb: {
		"busca en google inteligencia artificial", "busca python", "busca recetas de pasta",
		"busca noticias de tecnología", "busca cómo hacer pan", "investiga sobre machine learning",
		"investiga sobre python", "investiga inteligencia artificial", "googlea recetas de pasta",
		"googlea noticias", "googlea python tutorial", "qué es machine learning", "qué es python",
		"cómo funciona la IA", "cuál es la capital de Francia", "búscame información de tensorflow",
		"búscame tutoriales de python", "búscame recetas mexicanas", "échame una búsqueda de python",
		"investígame sobre IA", "busca inteligencia artificial", "investiga python",
	},
	LeerDocumento: {
		"lee este archivo", "lee este documento", "qué dice esta página", "que dice esta página",
		"lee esta web", "que dice este pdf", "lee este pdf", "abre este documento", "lee el archivo",
		"qué dice el documento", "lee la página", "muéstrame este archivo", "dime qué dice",
		"lee esto", "qué contiene este archivo",
	},
	ReproducirMedia: {
		"pon música", "pon rock", "pon lofi", "pon una canción", "pon reggaeton", "reproduce rock",
		"reproduce en youtube", "reproduce música", "reproduce lofi", "ponle música", "ponle rock",
		"ponle lofi", "pon música relajante", "reproduce música para estudiar", "pon algo de rock",
		"ponme música", "échale música", "métele rock", "dale play a lofi",
	},
	Alarma: {
		"alarma en 5 minutos", "alarma en 10 minutos", "alarma en 30 minutos",
		"pon alarma en 5 minutos", "pon una alarma en 10 minutos", "recuérdame en 5 minutos",
		"recuérdame en 10 minutos", "recuérdame en media hora", "pon un timer de 5 minutos",
		"timer de 10 minutos", "temporizador de 30 minutos", "avísame en 5 minutos",
		"avísame en una hora", "avísame en 10", "programa alarma 5 minutos",
		"configura timer 10 minutos",
	},
	Clima: {
		"qué clima hace", "que clima hace", "cómo está el clima", "como está el clima",
		"temperatura actual", "cuál es la temperatura", "va a llover hoy", "va a llover",
		"qué tiempo hace", "cómo está el tiempo", "clima de hoy", "pronóstico del tiempo",
		"hace frío", "hace calor", "temperatura",
	},
	HoraFecha: {
		"qué hora es", "que hora es", "hora actual", "dime la hora", "cuál es la hora",
		"qué horas son", "qué día es hoy", "que día es hoy", "fecha de hoy", "cuál es la fecha",
		"qué fecha es", "día de hoy", "en qué fecha estamos", "a cuántos estamos",
	},
	Traducir: {
		"traduce esto al inglés", "traduce al inglés hola", "cómo se dice hola en inglés",
		"como se dice hola en inglés", "tradúceme al inglés", "traduce hello al español",
		"cómo se dice hello en español", "tradúceme al español", "cómo se dice hola en francés",
		"traduce al francés", "traduce esto al alemán",
	},
	Calcular: {
		"cuánto es 50 por 3", "cuanto es 50 por 3", "calcula 50 por 3", "multiplica 50 por 3",
		"50 por 3", "cuánto es 100 más 50", "calcula 100 más 50", "suma 100 más 50", "100 más 50",
		"cuánto es 100 menos 50", "calcula 100 menos 50", "resta 100 menos 50",
		"cuánto es 200 entre 4", "divide 200 entre 4", "200 entre 4", "200 dividido 4",
	},
	ModoZen: {
		"activa modo zen", "modo zen", "modo concentración", "necesito concentrarme", "modo zen on",
		"activa zen", "pon modo zen", "quiero concentrarme", "modo focus", "activa modo focus",
		"necesito enfocarme",
	},
	AgendaVer: {
		"qué tengo hoy", "que tengo hoy", "qué tengo mañana", "ver agenda", "ver calendario",
		"lee mi agenda", "dime mi agenda", "eventos de hoy", "eventos de mañana", "próximos eventos",
		"proximos eventos", "qué sigue en mi agenda", "reuniones de hoy", "citas de hoy",
		"compromisos de hoy", "agenda para hoy", "calendario de hoy",
	},
	CambiarUbicacion: {
		"cambia mi ubicación a", "cambia mi ciudad a", "configura mi ciudad en", "pon mi ciudad en",
		"pon mi ubicación en", "cambiar mi ciudad a", "mi ciudad es", "estoy en", "ubicación actual",
	},
	GitStatus: {
		"git status", "estado de git", "ver estado git", "qué cambios tengo", "que cambios tengo",
		"archivos modificados",
	},
	GitPush: {
		"git push", "subir cambios", "sube cambios", "push", "enviar cambios", "subir a github",
		"sube a git",
	},
	GitInit: {
		"git init", "inicializar git", "crear repositorio", "iniciar git", "nuevo repositorio",
	},
	GitPull: {
		"git pull", "traer cambios", "actualizar repositorio", "pull", "bajar cambios",
	},
	CambiarDirectorio: {
		"trabajar en", "cambiar directorio", "cambiar carpeta", "ir a", "navegar a", "abrir carpeta",
	},
	MiIP: {
		"mi ip", "cuál es mi ip", "cual es mi ip", "ip local", "ip pública", "dirección ip",
	},
	LiberarPuerto: {
		"libera el puerto", "matar puerto", "cerrar puerto", "quien usa el puerto",
		"qué usa el puerto",
	},
	InstalarDependencias: {
		"instalar dependencias", "instalar paquetes", "install", "instala requirements",
		"pip install",
	},
	BuildProyecto: {
		"construir proyecto", "build", "compilar", "hacer build", "construir",
	},
	HealthIniciar: {
		"voy a trabajar", "empezar trabajo", "iniciar trabajo", "trabajar en casa",
		"trabajar en oficina", "empezar jornada", "comenzar trabajo", "inicio de jornada",
	},
	HealthPausar: {
		"pausa trabajo", "pausar trabajo", "descanso", "tomar descanso", "pausa", "descansar",
	},
	HealthReanudar: {
		"reanudar trabajo", "continuar trabajo", "volver al trabajo", "seguir trabajando",
		"reanudar", "continuar",
	},
	HealthTerminar: {
		"terminar trabajo", "fin de jornada", "acabar trabajo", "terminar jornada", "fin del día",
		"acabar jornada",
	},
	HealthTiempo: {
		"cuánto tiempo llevo", "cuanto tiempo llevo", "tiempo trabajado", "cuánto llevo trabajando",
		"tiempo de trabajo",
	},
	HealthProximoDescanso: {
		"próximo descanso", "proximo descanso", "siguiente descanso", "cuándo descanso",
		"cuando descanso", "falta mucho para descanso",
	},
	StudyResumePDF: {
		"resume pdf", "resumir pdf", "resumen de pdf", "resume este pdf", "haz un resumen del pdf",
	},
	StudyFlashcards: {
		"crea flashcards", "genera flashcards", "flashcards de", "hacer flashcards",
		"flashcards sobre",
	},
	GamesListar: {
		"qué juegos tengo", "que juegos tengo", "lista juegos", "mis juegos", "ver juegos",
		"mostrar juegos",
	},
	GamesEscanear: {
		"escanear juegos", "buscar juegos", "detectar juegos", "encontrar juegos", "scan juegos",
	},
	GamesAbrir: {
		"abre valorant", "juega valorant", "lanza valorant", "abre league", "juega minecraft",
		"lanza fortnite", "abre apex", "jugar valorant",
	},
	GamesOptimizar: {
		"optimiza para jugar", "modo gaming", "modo competitivo", "optimizar juegos", "modo gamer",
		"optimización gaming",
	},
	GamesCerrar: {
		"cierra juego", "cerrar juego", "cierra valorant", "cerrar league", "matar juego",
	},
	PerfilVer: {
		"mi perfil", "ver perfil", "mostrar perfil", "configuración personal",
		"ver mi configuración",
	},
	PerfilNombre: {
		"llámame", "llamame", "mi nombre es", "dime", "quiero que me digas",
	},
	PerfilIdioma: {
		"cambiar idioma", "idioma", "cambiar voz", "habla en inglés", "habla en español",
	},
	Brillo: {
		"sube el brillo", "baja el brillo", "brillo al máximo", "brillo al mínimo", "aumenta brillo",
		"disminuye brillo",
	},
	MediaControl: {
		"play", "pause", "pausa", "siguiente canción", "canción anterior", "next", "prev",
		"play pause",
	},
	BloquearPantalla: {
		"bloquea la pantalla", "bloquear pantalla", "lock", "bloquea el equipo", "bloquear pc",
	},
	ApagarPantalla: {
		"apaga la pantalla", "apagar pantalla", "apaga el monitor", "apagar monitor", "pantalla off",
	},
	MatarProceso: {
		"matar", "cerrar", "mata chrome", "cierra chrome", "matar proceso", "cerrar proceso",
	},
	MinimizarTodo: {
		"minimiza el escritorio", "minimiza todo", "minimizar todo", "mostrar escritorio",
		"escritorio", "win d",
	},
	Maximizar: {
		"maximiza", "maximizar", "maximiza ventana", "maximizar ventana", "pantalla completa",
	},
	ApagarSistema: {
		"apaga el sistema", "apagar", "shutdown", "apaga la pc", "apagar computadora",
		"apaga en 5 minutos",
	},
	ReiniciarSistema: {
		"reinicia el sistema", "reiniciar", "restart", "reinicia la pc", "reiniciar computadora",
		"reinicia en 5 minutos",
	},
	CancelarApagado: {
		"cancela el apagado", "cancelar apagado", "cancela shutdown", "no apagues",
		"detener apagado",
	},
	VaciarPapelera: {
		"vacía la papelera", "vaciar papelera", "empty recycle bin", "limpiar papelera",
		"borrar papelera",
	},
	CapturaPantalla: {
		"captura pantalla", "screenshot", "toma captura", "captura de pantalla", "tomar screenshot",
	},
	LimpiarTemp: {
		"limpia archivos temporales", "limpiar temp", "borrar temporales", "limpiar archivos temp",
		"clean temp",
	},
	ProcesosPesados: {
		"procesos pesados", "qué consume RAM", "que consume RAM", "procesos que consumen",
		"heavy processes",
	},
	LimpiezaProfunda: {
		"limpieza profunda", "limpia sistema", "limpia todo", "limpia temporales y papelera",
		"deep clean",
	},
	RutinaBuenosDias: {
		"rutina buenos días", "rutina buenos dias", "rutina mañana", "buenos días", "buenos dias",
		"rutina de mañana",
	},
	RutinaTrabajo: {
		"rutina trabajo", "modo trabajo", "rutina laboral", "empezar rutina trabajo",
	},
	RutinaFinTrabajo: {
		"rutina fin trabajo", "fin de trabajo", "rutina descanso", "terminar rutina trabajo",
	},
	RutinasListar: {
		"lista rutinas", "rutinas disponibles", "qué rutinas tengo", "que rutinas tengo",
		"ver rutinas",
	},
	NetworkDispositivos: {
		"dispositivos en la red", "ver dispositivos", "qué está conectado", "que esta conectado",
		"dispositivos wifi", "ver red",
	},
	NetworkEscanear: {
		"escanear red", "escanear wifi", "scan red", "buscar dispositivos", "detectar dispositivos",
	},
	NetworkDashboard: {
		"dashboard red", "panel red", "fortaleza", "ver panel red", "network dashboard",
	},
	PomodoroIniciar: {
		"inicia pomodoro", "empezar pomodoro", "pomodoro", "comenzar pomodoro", "start pomodoro",
	},
	PomodoroPausar: {
		"pausa pomodoro", "pausar pomodoro", "detener pomodoro",
	},
	PomodoroEstado: {
		"estado pomodoro", "cómo va el pomodoro", "como va el pomodoro", "tiempo pomodoro",
		"pomodoro status",
	},
	Ayuda: {
		"ayuda", "comandos", "qué puedes hacer", "que puedes hacer", "lista de comandos", "help",
		"qué sabes hacer",
	},
	AbrirConfiguracion: {
		"abre configuración", "abre configuracion", "abrir configuración", "abrir configuracion",
		"abre ajustes", "abrir ajustes", "abre settings", "configuración", "ajustes", "settings",
	},
	AbrirPerfil: {
		"abre mi perfil", "mi perfil", "configurar perfil", "editar perfil", "perfil de usuario",
		"ver mi perfil",
	},
	SistemaEstado: {
		"sistema", "estado", "monitor", "estado del sistema", "cómo está el sistema",
		"como esta el sistema", "rendimiento del sistema",
	},
	Conversacion: {
		"hola", "qué tal", "que tal", "cómo estás", "como estas", "buenos días", "buenas tardes",
		"buenas noches", "gracias", "de nada", "adiós", "adios", "hasta luego", "cuéntame un chiste",
		"cuentame un chiste", "háblame de ti", "hablame de ti", "quién eres", "quien eres",
	},
}
